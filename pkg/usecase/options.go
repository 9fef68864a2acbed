package usecase

import (
	"sync"
	"time"

	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
)

// DefaultPageSize is the fixed number of rows of a list page
const DefaultPageSize = 5

// config holds settings shared by the release and incident usecases
type config struct {
	pageSize     int
	notifier     interfaces.Notifier
	now          func() time.Time
	lock         *sync.Mutex
	deletionTTL  time.Duration
	systemPrompt string
}

// Option is a functional option for usecase configuration
type Option func(*config)

// WithPageSize sets the fixed list page size; non-positive values are ignored
func WithPageSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithNotifier sets the incident change notifier
func WithNotifier(n interfaces.Notifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithLock shares a write lock between usecases that update the same records.
// Incident changes adjust release incident counts, so the release and
// incident usecases built by New share one lock.
func WithLock(mu *sync.Mutex) Option {
	return func(c *config) {
		c.lock = mu
	}
}

// WithDeletionTTL sets how long a delete request can be confirmed
func WithDeletionTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.deletionTTL = ttl
		}
	}
}

// WithSystemPrompt replaces the embedded chat system instruction
func WithSystemPrompt(prompt string) Option {
	return func(c *config) {
		if prompt != "" {
			c.systemPrompt = prompt
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		pageSize:     DefaultPageSize,
		now:          time.Now,
		deletionTTL:  10 * time.Minute,
		systemPrompt: chatSystemPrompt,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.lock == nil {
		cfg.lock = &sync.Mutex{}
	}
	return cfg
}
