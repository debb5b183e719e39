package di

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	sessioncmd "github.com/goliatone/go-composer/internal/commands/session"
	"github.com/goliatone/go-composer/internal/layouts"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/logging/console"
	"github.com/goliatone/go-composer/internal/logging/gologger"
	"github.com/goliatone/go-composer/internal/render"
	"github.com/goliatone/go-composer/internal/runtimeconfig"
	"github.com/goliatone/go-composer/internal/session"
	"github.com/goliatone/go-composer/internal/storage"
	"github.com/goliatone/go-composer/internal/styles"
	"github.com/goliatone/go-composer/internal/templates"
	"github.com/goliatone/go-composer/pkg/interfaces"
	cmssections "github.com/goliatone/go-composer/sections"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Every collaborator falls back to an
// in-memory implementation unless storage is configured or injected.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	templates []cmssections.Template
	catalogFS fs.FS
	catalog   *templates.Catalog

	layoutRepo layouts.LayoutRepository
	styleRepo  styles.Repository

	themeFS       fs.FS
	styleDefaults styles.Settings

	layoutSvc layouts.Service
	resolver  *render.Resolver
	sessions  *session.Registry
	commands  *sessioncmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB injects an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithTemplates supplies the catalog for the memory catalog source.
func WithTemplates(list []cmssections.Template) Option {
	return func(c *Container) {
		c.templates = append([]cmssections.Template(nil), list...)
	}
}

// WithCatalogFS reads directory catalogs from fsys instead of the
// configured path.
func WithCatalogFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.catalogFS = fsys
	}
}

// WithThemeFS reads the theme manifest from fsys instead of the configured
// theme path. Styles.ThemePath is then the directory inside fsys.
func WithThemeFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.themeFS = fsys
	}
}

// WithLayoutRepository overrides the layout repository.
func WithLayoutRepository(repo layouts.LayoutRepository) Option {
	return func(c *Container) {
		c.layoutRepo = repo
	}
}

// WithStyleRepository overrides the style settings repository.
func WithStyleRepository(repo styles.Repository) Option {
	return func(c *Container) {
		c.styleRepo = repo
	}
}

// NewContainer validates cfg and builds the composer collaborators.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	catalog, err := c.loadCatalog()
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.catalog = catalog

	if err := c.loadTheme(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.resolver = render.NewResolver(render.WithEscapeHTML(cfg.Render.EscapeHTML))
	c.layoutSvc = layouts.NewService(c.layoutRepo, layouts.WithLogger(logging.LayoutsLogger(c.loggerProvider)))
	c.sessions = session.NewRegistry()

	set, err := sessioncmd.RegisterSessionCommands(nil, c.sessions, c.loggerProvider)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.commands = set

	logging.ModuleLogger(c.loggerProvider, "composer.di").Debug("container.configured",
		"templates", catalog.Len(),
		"persistence", cfg.Features.Persistence,
		"styles", cfg.Features.Styles,
		"cache", c.cacheService != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if !c.Config.Features.Logger {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := consoleLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil {
		return nil
	}
	if !c.Config.Features.Persistence && !c.Config.Features.Styles {
		return nil
	}
	ctx := context.Background()
	db, err := storage.Open(ctx, c.Config.Storage)
	if err != nil {
		return err
	}
	if err := storage.CreateTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.layoutRepo == nil {
		if c.bunDB != nil && c.Config.Features.Persistence {
			c.layoutRepo = layouts.NewBunLayoutRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.layoutRepo = layouts.NewMemoryRepository()
		}
	}
	if c.styleRepo == nil {
		if c.bunDB != nil && c.Config.Features.Styles {
			c.styleRepo = styles.NewBunRepository(c.bunDB)
		} else {
			c.styleRepo = styles.NewMemoryRepository()
		}
	}
}

func (c *Container) loadCatalog() (*templates.Catalog, error) {
	logger := logging.CatalogLogger(c.loggerProvider)
	loader := templates.NewLoader(templates.WithLoaderLogger(logger))
	cfg := c.Config.Catalog

	var (
		list []cmssections.Template
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case "directory":
		fsys := c.catalogFS
		if fsys == nil {
			fsys = os.DirFS(cfg.Path)
		}
		list, err = loader.Directory(fsys, cfg.Pattern)
	case "manifest":
		var file *os.File
		file, err = os.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open catalog manifest: %w", err)
		}
		defer file.Close()
		list, err = loader.Manifest(file)
	default:
		list = c.templates
	}
	if err != nil {
		return nil, err
	}

	catalog, err := templates.NewCatalog(list)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog.loaded", "source", cfg.Source, "templates", catalog.Len(), "categories", len(catalog.Categories()))
	return catalog, nil
}

func (c *Container) loadTheme() error {
	cfg := c.Config.Styles
	themePath := strings.TrimSpace(cfg.ThemePath)
	if themePath == "" && c.themeFS == nil {
		return nil
	}

	fsys, dir := c.themeFS, themePath
	if fsys == nil {
		fsys, dir = os.DirFS(filepath.Clean(themePath)), "."
	}
	manifest, err := styles.LoadTheme(fsys, dir)
	if err != nil {
		return err
	}
	defaults, err := styles.ThemeDefaults(manifest, cfg.Variant)
	if err != nil {
		return err
	}
	c.styleDefaults = defaults
	logging.StylesLogger(c.loggerProvider).Info("styles.theme.loaded",
		"theme", manifest.Name,
		"version", manifest.Version,
		"variant", cfg.Variant,
		"tokens", len(defaults),
	)
	return nil
}

// SessionOptions returns the session options implied by config.
func (c *Container) SessionOptions() []session.Option {
	return []session.Option{
		session.WithHistoryLimit(c.Config.History.Limit),
		session.WithResolver(c.resolver),
		session.WithLogger(logging.SessionLogger(c.loggerProvider)),
	}
}

// StyleStore opens a style store for scope, seeded with the theme tokens.
func (c *Container) StyleStore(scope string) (*styles.Store, error) {
	return styles.NewStore(c.styleRepo, scope,
		styles.WithLogger(logging.StylesLogger(c.loggerProvider)),
		styles.WithDefaults(c.styleDefaults),
	)
}

// InvalidateCaches drops cached layout reads.
func (c *Container) InvalidateCaches(ctx context.Context) error {
	if invalidator, ok := c.layoutRepo.(layouts.CacheInvalidator); ok {
		return invalidator.InvalidateCache(ctx)
	}
	return nil
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

func (c *Container) Catalog() *templates.Catalog {
	return c.catalog
}

func (c *Container) LayoutService() layouts.Service {
	return c.layoutSvc
}

func (c *Container) LayoutRepository() layouts.LayoutRepository {
	return c.layoutRepo
}

func (c *Container) StyleRepository() styles.Repository {
	return c.styleRepo
}

// StyleDefaults returns the theme tokens every style store starts from.
func (c *Container) StyleDefaults() styles.Settings {
	return c.styleDefaults.Clone()
}

func (c *Container) Resolver() *render.Resolver {
	return c.resolver
}

func (c *Container) Sessions() *session.Registry {
	return c.sessions
}

func (c *Container) Commands() *sessioncmd.HandlerSet {
	return c.commands
}
