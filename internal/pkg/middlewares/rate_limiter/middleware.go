package rate_limiter

import (
	"net/http"
	"strconv"

	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/caller"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/route"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
)

const limitExceededBody = `{"error":"Too Many Requests","message":"Rate limit exceeded. Try again later."}`

func Middleware(log middlewareLogger, limit int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := route.Template(r)
			identified := r.Header.Get(caller.Header) != ""
			RateLimitedTotal.WithLabelValues(r.Method, handlerPath, strconv.FormatBool(identified)).Inc()

			reqLog := log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", handlerPath),
				logger.NewField("remote_addr", r.RemoteAddr),
				logger.NewField("identified", identified),
			)
			reqLog.Warn("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(limitExceededBody)); err != nil {
				reqLog.Error("failed to write rate limit response", logger.NewField("error", err))
			}
		})
	}
}
