package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody   = Error("invalid request body")
	ErrInvalidRequest       = Error("invalid request")
	ErrInvalidParams        = Error("invalid params")
	ErrInvalidToken         = Error("invalid token")
	ErrUnauthorized         = Error("unauthorized")
	ErrForbidden            = Error("forbidden")
	ErrUserNotFound         = Error("user not found")
	ErrMessageNotFound      = Error("message not found")
	ErrStoreUnavailable     = Error("store unavailable")
	ErrAssistantUnavailable = Error("assistant unavailable")
	ErrConnectionClosed     = Error("connection closed")
	ErrOutboundQueueFull    = Error("outbound queue full")
)
