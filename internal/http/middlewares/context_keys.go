package middlewares

type ctxKey string

const (
	CtxRequestID ctxKey = "requestID"
	CtxUserID    ctxKey = "userID"
	CtxUsername  ctxKey = "username"
	CtxRole      ctxKey = "role"
)
