package links

// Link is one of the user's short links as the list/update endpoints shape it.
type Link struct {
	ID          string `json:"_id"`
	LongURL     string `json:"longURL"`
	Slug        string `json:"slug"`
	UserID      string `json:"userId,omitempty"`
	ClicksCount int64  `json:"clicksCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Created is the create endpoint's response shape. It differs from Link: the
// server returns the ready-to-share short URL and names the counter "clicks".
type Created struct {
	ID        string `json:"_id"`
	LongURL   string `json:"longURL"`
	ShortURL  string `json:"shortURL"`
	Slug      string `json:"slug"`
	Clicks    int64  `json:"clicks"`
	CreatedAt string `json:"createdAt"`
}

// Page is one page of the user's links.
type Page struct {
	Links      []Link `json:"links"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

// CreateInput carries the create command's fields. The slug is optional; the
// server assigns one when it is empty.
type CreateInput struct {
	LongURL    string `json:"longURL" validate:"required,notblank,http_url"`
	CustomSlug string `json:"customSlug,omitempty" validate:"omitempty,slug"`
}
