package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Natili254/Eveflow/internal/domain"
)

const rateLimitPrefix = "eveflow:ratelimit"

// NewLimiter builds a limiter from a formatted rate such as "300-M". A nil
// client keeps counters in process memory.
func NewLimiter(rate string, client *redis.Client) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", rate, err)
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
		if err != nil {
			return nil, fmt.Errorf("redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}
	return limiter.New(store, r), nil
}

// Identifier names the caller of a request, if it can.
type Identifier func(r *http.Request) (domain.Actor, bool)

// RateLimit throttles requests per identified actor, falling back to the
// client IP for anonymous callers and rejected tokens. A nil identify reads
// the actor stored by the auth middleware.
func RateLimit(l *limiter.Limiter, identify Identifier) func(http.Handler) http.Handler {
	if identify == nil {
		identify = func(r *http.Request) (domain.Actor, bool) { return ActorFromContext(r.Context()) }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + l.GetIPKey(r)
			if actor, ok := identify(r); ok {
				key = "actor:" + strconv.FormatInt(actor.ID, 10)
			}

			lctx, err := l.Get(r.Context(), key)
			if err != nil {
				loggerFrom(r.Context()).WithError(err).Error("rate limiter unavailable")
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				writeError(w, http.StatusTooManyRequests, codeRateLimited, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
