package recovery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsukikage7/rankstore/logger"
)

func TestGuard_NoPanic(t *testing.T) {
	boom := errors.New("boom")
	assert.NoError(t, Guard(context.Background(), func() error { return nil }))
	assert.ErrorIs(t, Guard(context.Background(), func() error { return boom }), boom)
}

func TestGuard_Panic(t *testing.T) {
	err := Guard(context.Background(), func() error {
		panic("index out of range")
	}, WithLogger(logger.NewNop()), WithStackSize(1024))

	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "index out of range", perr.Value)
	assert.NotEmpty(t, perr.Stack)
	assert.LessOrEqual(t, len(perr.Stack), 1024)
	assert.Equal(t, "panic: index out of range", err.Error())
	assert.Nil(t, perr.Unwrap())
}

func TestGuard_PanicWithError(t *testing.T) {
	cause := errors.New("corrupted")
	err := Guard(context.Background(), func() error { panic(cause) })
	assert.ErrorIs(t, err, cause)
}

func TestGuard_Handler(t *testing.T) {
	replaced := errors.New("replaced")
	var seen any
	err := Guard(context.Background(), func() error { panic(42) }, WithHandler(func(_ context.Context, p any, stack []byte) error {
		seen = p
		assert.NotEmpty(t, stack)
		return replaced
	}))
	assert.ErrorIs(t, err, replaced)
	assert.Equal(t, 42, seen)
}

func TestHTTPMiddleware(t *testing.T) {
	h := HTTPMiddleware(WithLogger(logger.NewNop()))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/panic" {
			panic("scrape failed")
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
