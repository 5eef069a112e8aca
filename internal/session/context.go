package session

import "context"

type ctxKey string

const visitorKey ctxKey = "physio.visitor_id"

// WithVisitorID stores the visitor id in context.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorKey, visitorID)
}

// VisitorIDFromContext extracts the visitor id if present.
func VisitorIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(visitorKey)
	if val == nil {
		return "", false
	}
	visitorID, ok := val.(string)
	return visitorID, ok && visitorID != ""
}
