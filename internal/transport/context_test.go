package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextHelpers(t *testing.T) {
	t.Run("InjectAndRetrieve", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Idempotency-Key", "abc")
		w := httptest.NewRecorder()

		ctx := WithHTTP(context.Background(), req, w)

		assert.Equal(t, req, GetRequest(ctx))
		assert.Equal(t, "abc", GetRequest(ctx).Header.Get("Idempotency-Key"))
		assert.Equal(t, w, GetResponseWriter(ctx))
	})

	t.Run("EmptyContext", func(t *testing.T) {
		ctx := context.Background()

		assert.Nil(t, GetRequest(ctx))
		assert.Nil(t, GetResponseWriter(ctx))
	})
}
