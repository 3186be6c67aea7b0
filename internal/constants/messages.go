package constants

// User-facing fallback messages shown when the server does not provide one.
const (
	MsgLoginFailed    = "Invalid credentials. Please try again."
	MsgRegisterFailed = "Could not create account. Please try again."
	MsgGenericError   = "An error occurred"
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgNoChanges      = "The slug is the same as before"
)

// Known server message fragments used to classify failures that share an
// HTTP status with other error kinds.
const (
	ServerMsgNotFound = "Short Url not found"
)
