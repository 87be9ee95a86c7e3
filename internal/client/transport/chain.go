package transport

import "context"

type priorResponsesKey struct{}

// withPriorResponses records how many responses preceded the request
// in the same logical call.
func withPriorResponses(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, priorResponsesKey{}, n)
}

func priorResponses(ctx context.Context) int {
	n, _ := ctx.Value(priorResponsesKey{}).(int)
	return n
}
