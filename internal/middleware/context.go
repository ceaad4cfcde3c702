package middleware

import (
	"context"

	"github.com/luniksss/lunikiss-storefront/internal/session"
)

type ctxKey string

const (
	ctxCorrelationID ctxKey = "correlation_id"
	ctxSession       ctxKey = "session"
)

func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, ctxCorrelationID, cid)
}

func GetCorrelationID(ctx context.Context) string {
	if v := ctx.Value(ctxCorrelationID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetSession returns the resolved session for this request. The zero value
// means the caller is anonymous.
func GetSession(ctx context.Context) session.Session {
	if v := ctx.Value(ctxSession); v != nil {
		if s, ok := v.(session.Session); ok {
			return s
		}
	}
	return session.Session{}
}

func WithSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, ctxSession, s)
}
