package caller

import (
	"context"
	"net/http"
	"strings"

	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/address"
)

const Header = "X-Caller-Address"

type ctxKey struct{}

// Middleware puts the address from the X-Caller-Address header into the
// request context. Requests without it get 401, malformed ones 400.
func Middleware(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := strings.TrimSpace(r.Header.Get(Header))
			if caller == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if err := address.Validate(prefix, caller); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, ctxKey{}, caller)
}

// FromContext returns "" when the request went around the middleware.
func FromContext(ctx context.Context) string {
	caller, _ := ctx.Value(ctxKey{}).(string)
	return caller
}
