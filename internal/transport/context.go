package transport

import (
	"context"
	"net/http"
)

type ctxKey string

const (
	requestKey        ctxKey = "httpRequest"
	responseWriterKey ctxKey = "httpResponseWriter"
)

// WithHTTP exposes the raw request and writer to GraphQL resolvers, which
// only see a context. Login uses it to set the access token cookie and
// checkout to read the Idempotency-Key header.
func WithHTTP(ctx context.Context, r *http.Request, w http.ResponseWriter) context.Context {
	ctx = context.WithValue(ctx, requestKey, r)
	return context.WithValue(ctx, responseWriterKey, w)
}

func GetRequest(ctx context.Context) *http.Request {
	r, _ := ctx.Value(requestKey).(*http.Request)
	return r
}

func GetResponseWriter(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(responseWriterKey).(http.ResponseWriter)
	return w
}
