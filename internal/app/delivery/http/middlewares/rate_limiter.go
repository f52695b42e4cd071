package middlewares

import (
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/exceptions"
	"lgu-portal-service/internal/pkg/utils"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket per client IP that blocks an address for
// blockTime once it exhausts its bucket. It guards the gateway callback,
// where a misbehaving sender should be shut out rather than throttled.
// Clients idle long enough for their bucket to refill are swept out.
type RateLimiter struct {
	log       *zap.Logger
	clients   map[string]*rateClient
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type rateClient struct {
	limiter      *rate.Limiter
	lastSeen     time.Time
	blockedUntil time.Time
}

const (
	callbackRequestsPerMinute = 120
	callbackBlockTime         = 5 * time.Minute
)

// CallbackRateLimiter builds the limiter mounted on the gateway callback.
func (m *Middlewares) CallbackRateLimiter() *RateLimiter {
	return NewRateLimiter(m.Log, callbackRequestsPerMinute, time.Minute/callbackRequestsPerMinute, callbackBlockTime)
}

func NewRateLimiter(log *zap.Logger, requests int, per, blockTime time.Duration) *RateLimiter {
	idleTTL := per * time.Duration(requests)
	if idleTTL < blockTime {
		idleTTL = blockTime
	}
	return &RateLimiter{
		log:       log,
		clients:   make(map[string]*rateClient),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		idleTTL:   idleTTL,
		now:       time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if !r.allow(ip) {
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(ip))
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	client, exists := r.clients[ip]
	if !exists {
		client = &rateClient{limiter: rate.NewLimiter(rate.Every(r.per), r.requests)}
		r.clients[ip] = client
	}
	client.lastSeen = now

	if now.Before(client.blockedUntil) {
		return false
	}
	if !client.limiter.AllowN(now, 1) {
		client.blockedUntil = now.Add(r.blockTime)
		return false
	}
	return true
}

// sweepLocked drops clients that are not blocked and have been idle for
// idleTTL. It runs at most once per idleTTL.
func (r *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	r.lastSweep = now

	evicted := 0
	for ip, client := range r.clients {
		if now.Before(client.blockedUntil) || now.Sub(client.lastSeen) < r.idleTTL {
			continue
		}
		delete(r.clients, ip)
		evicted++
	}
	if evicted > 0 {
		r.log.Debug("RateLimiter evicted idle clients",
			zap.Int(constvars.LoggingCountKey, evicted),
			zap.Int("remaining", len(r.clients)),
		)
	}
}

func (r *RateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
