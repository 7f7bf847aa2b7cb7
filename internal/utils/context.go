package utils

import (
	"context"
)

type key int

const (
	// CtxContext context key for request data object
	CtxContext key = iota
)

// RequestData keeps per request values shared between layers
type RequestData struct {
	ID string
}

// WithRequestData returns ctx carrying a new RequestData with the given id
func WithRequestData(ctx context.Context, id string) (context.Context, *RequestData) {
	res := &RequestData{ID: id}
	return context.WithValue(ctx, CtxContext, res), res
}

// RequestID returns the request id stored in ctx or an empty string
func RequestID(ctx context.Context) string {
	res, ok := ctx.Value(CtxContext).(*RequestData)
	if ok {
		return res.ID
	}
	return ""
}
