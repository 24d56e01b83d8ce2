package obs

import "context"

type (
	routePatternKey struct{}
	invocationIDKey struct{}
)

// WithRoutePattern stores the matched router pattern on the context.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, routePatternKey{}, pattern)
}

// RoutePatternFromContext extracts the route pattern from context if present.
func RoutePatternFromContext(ctx context.Context) string {
	v, _ := ctx.Value(routePatternKey{}).(string)
	return v
}

// WithInvocationID tags ctx with the id of the discount evaluation it serves:
// the request id over HTTP or a generated id for one-shot runs.
func WithInvocationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, invocationIDKey{}, id)
}

// InvocationIDFromContext returns the invocation id, or "" when unset.
func InvocationIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(invocationIDKey{}).(string)
	return v
}
