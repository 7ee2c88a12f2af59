package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"TravelLedger/pkg/handlerUtil"
	"TravelLedger/pkg/response"
)

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "too many requests")
)

const clientIdleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	clients   map[string]*client
	rate      rate.Limit
	burstSize int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	mutex     sync.Mutex
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		clients:   make(map[string]*client),
		rate:      reqRate,
		burstSize: burstSize,
		idleTTL:   clientIdleTTL,
		now:       time.Now,
	}
}

// limiterFor returns the bucket for ip. Clients idle for longer than idleTTL
// are dropped at most once per idleTTL.
func (r *rateLimiter) limiterFor(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.idleTTL {
		for key, c := range r.clients {
			if now.Sub(c.lastSeen) >= r.idleTTL {
				delete(r.clients, key)
			}
		}
		r.lastSweep = now
	}

	c, ok := r.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter
}

func (r *rateLimiter) tracked() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.clients)
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	if m.rateLimitter.limiterFor(clientIP).Allow() {
		return ctx.Next()
	}

	retryAfter := 1
	if r := float64(m.rateLimitter.rate); r > 0 && r < 1 {
		retryAfter = int(math.Ceil(1 / r))
	}
	ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))

	return handlerUtil.New(m.log).Handle(ctx, m.GetRequestID(ctx), ErrTooManyRequests, ctx.Path(), "rate_limit")
}
