package osquery

import "context"

type querierCtxKeyType string

const querierCtxKey querierCtxKeyType = "querier"

func WithQuerier(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, querierCtxKey, q)
}

// QuerierFromContext returns the Querier stored in ctx, or nil.
func QuerierFromContext(ctx context.Context) Querier {
	q, _ := ctx.Value(querierCtxKey).(Querier)
	return q
}
