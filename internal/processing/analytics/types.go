package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Count is one label/count pair of an aggregate mapping.
type Count struct {
	Key   string
	Value int64
}

// Counts is an ordered label->count mapping. The server sends these as JSON
// objects keyed by date, browser, referrer or country; a Go map would shuffle
// them, so Counts decodes the object into a slice that preserves the server's
// key order. Chart order therefore matches source order, which is the contract
// the views rely on.
type Counts []Count

func (c *Counts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil { // JSON null reads as an empty mapping
		*c = Counts{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("analytics: expected object for counts, got %v", tok)
	}

	out := Counts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("analytics: expected string key, got %v", keyTok)
		}

		var value int64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("analytics: count for %q: %w", key, err)
		}

		out = append(out, Count{Key: key, Value: value})
	}

	*c = out
	return nil
}

func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", kv.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TopLink is one entry of the global top-performing links, pre-sorted by the
// server in descending click order.
type TopLink struct {
	Slug    string `json:"slug"`
	Clicks  int64  `json:"clicks"`
	LongURL string `json:"longURL"`
}

// Aggregate is the per-link analytics payload.
type Aggregate struct {
	Slug         string `json:"slug"`
	LongURL      string `json:"longURL"`
	TotalClicks  int64  `json:"totalClicks"`
	ClicksByDate Counts `json:"clicksByDate"`
	Browsers     Counts `json:"browsers"`
	Referrers    Counts `json:"referrers"`
	Geo          Counts `json:"geo"`
	// AISummary is opaque server-generated text, passed through unmodified.
	AISummary string `json:"aiSummary"`
	CreatedAt string `json:"createdAt"`
}

// GlobalAggregate is the account-wide analytics payload.
type GlobalAggregate struct {
	TotalLinks   int64     `json:"totalLinks"`
	TotalClicks  int64     `json:"totalClicks"`
	ClicksByDate Counts    `json:"clicksByDate"`
	Browsers     Counts    `json:"browsers"`
	Referrers    Counts    `json:"referrers"`
	Geo          Counts    `json:"geo"`
	TopLinks     []TopLink `json:"topLinks"`
	AISummary    string    `json:"aiSummary"`
}
