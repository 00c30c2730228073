package core

import "context"

type clientKey struct{}

// Client describes who started a classification run.
type Client struct {
	IP        string
	UserAgent string
}

// WithClient attaches client details to ctx for run logging.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFromContext returns the client stored by WithClient, or the zero Client.
func ClientFromContext(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey{}).(Client)
	return c
}
