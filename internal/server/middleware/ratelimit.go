package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dabi61/opensky/internal/server/handlers"
)

// RateLimiter - token bucket на каждый ключ (IP адрес).
// Bucket вмещает burst токенов и пополняется со скоростью perMinute в минуту.
type RateLimiter struct {
	buckets   map[string]*bucket
	logger    *slog.Logger
	cleanupC  chan struct{}
	now       func() time.Time
	perSecond float64
	burst     float64
	idleTTL   time.Duration
	mu        sync.Mutex
	stopOnce  sync.Once
}

type bucket struct {
	lastSeen time.Time
	tokens   float64
}

// NewRateLimiter создает limiter и запускает очистку неактивных bucket
func NewRateLimiter(perMinute, burst int, logger *slog.Logger) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		buckets:   make(map[string]*bucket),
		logger:    logger,
		cleanupC:  make(chan struct{}),
		now:       time.Now,
		perSecond: float64(perMinute) / 60,
		burst:     float64(burst),
	}
	// За это время пустой bucket заполняется полностью, хранить его дальше незачем
	rl.idleTTL = time.Duration(rl.burst / rl.perSecond * float64(time.Second))

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(max(rl.idleTTL, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupIdle()
		case <-rl.cleanupC:
			return
		}
	}
}

func (rl *RateLimiter) cleanupIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.idleTTL {
			delete(rl.buckets, key)
		}
	}
}

// Stop останавливает cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.cleanupC) })
}

// Allow забирает токен для ключа. При отказе возвращает, через сколько появится следующий токен.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.burst, lastSeen: now}
		rl.buckets[key] = b
	}

	if elapsed := now.Sub(b.lastSeen); elapsed > 0 {
		b.tokens = math.Min(rl.burst, b.tokens+elapsed.Seconds()*rl.perSecond)
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	wait := time.Duration((1 - b.tokens) / rl.perSecond * float64(time.Second))
	return false, wait
}

// PathRateLimit задает отдельный лимит для пути, например для login
type PathRateLimit struct {
	Path      string
	PerMinute int
	Burst     int
}

// RateLimitMiddleware ограничивает частоту запросов по IP.
// Пути из limits получают собственные bucket, остальные делят общий лимит.
func RateLimitMiddleware(logger *slog.Logger, perMinute, burst int, limits ...PathRateLimit) (func(http.Handler) http.Handler, func()) {
	limiters := make(map[string]*RateLimiter, len(limits))
	for _, l := range limits {
		limiters[l.Path] = NewRateLimiter(l.PerMinute, l.Burst, logger)
	}
	defaultLimiter := NewRateLimiter(perMinute, burst, logger)

	stop := func() {
		defaultLimiter.Stop()
		for _, l := range limiters {
			l.Stop()
		}
	}

	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter, ok := limiters[r.URL.Path]
			if !ok {
				limiter = defaultLimiter
			}

			key := clientIP(r)
			allowed, wait := limiter.Allow(key)
			if !allowed {
				logger.WarnContext(r.Context(), "rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", r.URL.Path,
				)
				// Retry-After в целых секундах, округляем вверх
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				handlers.SendError(w, logger, "rate limit exceeded, please try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
	return mw, stop
}

// clientIP извлекает IP адрес клиента.
// X-Forwarded-For и X-Real-IP учитываются для работы за прокси.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
