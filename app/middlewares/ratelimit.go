package middlewares

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
	"golang.org/x/time/rate"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

const maxTrackedClients = 10000

// LoginRateLimiter throttles requests per client address.
type LoginRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	hops     int
	rnd      *render.Render
	log      *logrus.Logger
}

// NewLoginRateLimiter allows perMinute attempts per client. trustedHops is the
// number of reverse proxies in front of the server that append to X-Forwarded-For.
func NewLoginRateLimiter(perMinute, trustedHops int, rnd *render.Render, log *logrus.Logger) *LoginRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &LoginRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		hops:     trustedHops,
		rnd:      rnd,
		log:      log,
	}
}

func (rl *LoginRateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.limiters) >= maxTrackedClients {
		rl.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

func (rl *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ClientIP(r, rl.hops)
		if !rl.limiter(key).Allow() {
			rl.log.WithFields(logrus.Fields{"client": key, "path": r.URL.Path}).Warn("LoginRateLimiter: too many login attempts")
			helpers.RespondError(rl.rnd, w, apperr.RateLimited("Too many login attempts, try again later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the address the outermost of trustedHops proxies saw. With no
// trusted proxies X-Forwarded-For is client-controlled and ignored.
func ClientIP(r *http.Request, trustedHops int) string {
	if trustedHops > 0 {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			i := len(hops) - trustedHops
			if i < 0 {
				i = 0
			}
			if ip := strings.TrimSpace(hops[i]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
