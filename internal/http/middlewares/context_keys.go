package middlewares

// gin context keys. Handlers read them through the helpers, never directly.
const (
	CtxRequestID = "request_id"
	CtxClaims    = "auth.claims"
	CtxUserID    = "auth.userID"
	CtxRole      = "auth.role"
)
