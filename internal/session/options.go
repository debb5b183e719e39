package session

import (
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/render"
	"github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/pkg/interfaces"
	cmssections "github.com/goliatone/go-composer/sections"
)

type Option func(*config)

type config struct {
	initial           []cmssections.Section
	historyLimit      int
	idGenerator       sections.IDGenerator
	resolver          *render.Resolver
	persister         Persister
	pageKey           string
	logger            interfaces.Logger
	selectOnDuplicate bool
}

func newConfig(opts ...Option) config {
	cfg := config{
		logger:            logging.NoOp(),
		selectOnDuplicate: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.resolver == nil {
		cfg.resolver = render.NewResolver()
	}
	return cfg
}

// WithInitialSections seeds the session, typically with a persisted list.
func WithInitialSections(list []cmssections.Section) Option {
	return func(c *config) {
		c.initial = list
	}
}

// WithHistoryLimit caps the retained snapshots; zero keeps everything.
func WithHistoryLimit(limit int) Option {
	return func(c *config) {
		c.historyLimit = limit
	}
}

func WithIDGenerator(generator sections.IDGenerator) Option {
	return func(c *config) {
		c.idGenerator = generator
	}
}

// WithResolver shares a resolver, and its parse cache, between sessions.
func WithResolver(resolver *render.Resolver) Option {
	return func(c *config) {
		if resolver != nil {
			c.resolver = resolver
		}
	}
}

// WithPersister sets where Save writes the page.
func WithPersister(persister Persister, pageKey string) Option {
	return func(c *config) {
		c.persister = persister
		c.pageKey = pageKey
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSelectOnDuplicate controls whether duplicating the selected section
// selects the copy.
func WithSelectOnDuplicate(enabled bool) Option {
	return func(c *config) {
		c.selectOnDuplicate = enabled
	}
}
