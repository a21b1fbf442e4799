package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"companysite/internal/models"
	"companysite/internal/pkg/utils"
)

// SubmissionDeduper remembers form submissions for a while.
type SubmissionDeduper interface {
	// Seen records key and reports whether it was already recorded.
	Seen(ctx context.Context, key string) (bool, error)
	// Forget drops key so the same submission can be retried.
	Forget(ctx context.Context, key string) error
}

type redisSubmissionDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (d *redisSubmissionDeduper) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.prefix+":"+key, "1", d.ttl).Result()
	if err != nil {
		return false, err
	}
	// false => already exists => duplicate
	return !ok, nil
}

func (d *redisSubmissionDeduper) Forget(ctx context.Context, key string) error {
	return d.client.Del(ctx, d.prefix+":"+key).Err()
}

type memorySubmissionDeduper struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
	nextGC time.Time
}

func newMemorySubmissionDeduper(ttl time.Duration) *memorySubmissionDeduper {
	now := time.Now()
	return &memorySubmissionDeduper{
		seen:   make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
		nextGC: now.Add(ttl),
	}
}

func (d *memorySubmissionDeduper) Seen(_ context.Context, key string) (bool, error) {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if exp, ok := d.seen[key]; ok && exp.After(now) {
		return true, nil
	}

	d.seen[key] = now.Add(d.ttl)
	if now.After(d.nextGC) {
		for k, exp := range d.seen {
			if exp.Before(now) {
				delete(d.seen, k)
			}
		}
		d.nextGC = now.Add(d.ttl)
	}

	return false, nil
}

func (d *memorySubmissionDeduper) Forget(_ context.Context, key string) error {
	d.mu.Lock()
	delete(d.seen, key)
	d.mu.Unlock()
	return nil
}

// NewSubmissionDeduper builds a Redis deduper and falls back to in-memory on failure.
func NewSubmissionDeduper(addr, pass string, db int, ttl time.Duration) (SubmissionDeduper, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if addr == "" {
		return newMemorySubmissionDeduper(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return newMemorySubmissionDeduper(ttl), err
	}

	return &redisSubmissionDeduper{
		client: client,
		prefix: "dashboard:submit",
		ttl:    ttl,
	}, nil
}

// AccessRequestDedup rejects an access request identical to one submitted
// within the deduper's window. Requests that cannot be read are passed on so
// the handler reports the problem. A submission the handler did not accept is
// forgotten again.
func AccessRequestDedup(deduper SubmissionDeduper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if deduper == nil {
				return next(c)
			}

			req := c.Request()
			if req.Body == nil {
				return next(c)
			}

			rawBody, err := io.ReadAll(req.Body)
			if err != nil {
				return next(c)
			}
			req.Body = io.NopCloser(bytes.NewReader(rawBody))
			if len(rawBody) == 0 {
				return next(c)
			}

			var in models.AccessRequestInput
			bindErr := c.Bind(&in)
			req.Body = io.NopCloser(bytes.NewReader(rawBody))
			if bindErr != nil {
				return next(c)
			}

			key := utils.Fingerprint(
				strings.ToUpper(strings.TrimSpace(in.RequestType)),
				strings.ToLower(strings.TrimSpace(in.YourName)),
				strings.ToLower(strings.TrimSpace(in.EmployeeName)),
				strings.TrimSpace(in.EmployeeID),
				strings.TrimSpace(in.RequestDetails),
			)
			isDuplicate, err := deduper.Seen(req.Context(), key)
			if err != nil {
				return next(c)
			}
			if isDuplicate {
				return c.JSON(http.StatusConflict, models.APIResponse{
					Success: false,
					Message: "This request has already been submitted",
				})
			}

			err = next(c)
			if err != nil || c.Response().Status >= http.StatusMultipleChoices {
				_ = deduper.Forget(context.WithoutCancel(req.Context()), key)
			}
			return err
		}
	}
}
