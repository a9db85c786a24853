package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger *slog.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// keyLocks serializes requests sharing one subject and key, so a retry
// waits for the first attempt and then replays its stored response.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu      sync.Mutex
	waiters int
}

func (k *keyLocks) lock(id string) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &keyLock{}
		k.locks[id] = l
	}
	l.waiters++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.waiters--
		if l.waiters == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

// Idempotency replays the stored response when a POST repeats an
// Idempotency-Key already used by the same subject. Concurrent requests with
// the same key run one at a time. Requests without a key run normally. Only
// 2xx responses are stored.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	locks := &keyLocks{locks: make(map[string]*keyLock)}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		subject := c.GetString(ContextSubject)
		if subject == "" {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		unlock := locks.lock(subject + "\x00" + idempotencyKey)
		defer unlock()

		ctx := c.Request.Context()
		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, subject)
		if err != nil {
			response.InternalServerError(c, "Failed to check idempotency key")
			c.Abort()
			return
		}

		endpoint := c.Request.Method + " " + c.Request.URL.Path
		now := time.Now()
		if existing != nil && existing.IsExpired(now) {
			if err := config.Repo.DeleteExpired(ctx, now); err != nil {
				logger.Warn("failed to purge expired idempotency keys", "error", err)
			}
			existing = nil
		}
		if existing != nil && existing.Endpoint != endpoint {
			response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
			c.Abort()
			return
		}
		if existing != nil {
			c.Header("X-Idempotency-Replayed", "true")
			contentType := existing.ContentType
			if contentType == "" {
				contentType = "application/json; charset=utf-8"
			}
			c.Data(existing.ResponseCode, contentType, existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status > 299 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			Subject:      subject,
			Endpoint:     endpoint,
			ResponseCode: status,
			ContentType:  c.Writer.Header().Get("Content-Type"),
			ResponseBody: blw.body.Bytes(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(ctx, ikey); err != nil {
			logger.Warn("failed to store idempotency key", "key", idempotencyKey, "subject", subject, "error", err)
		}
	}
}
