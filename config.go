package timespeak

import (
	"log/slog"
	"time"
)

// Config captures decoder setup. Zero value plus BuildDecoder yields a
// working decoder over the embedded packs.
type Config struct {
	DefaultLocale string
	Loader        PackLoader
	Store         *PackStore
	Clock         func() time.Time
	Location      *time.Location
	Logger        *slog.Logger
	Hooks         []DecodeHook

	packDirs     []string
	stripUnknown bool
}

// Option mutates Config during construction.
type Option func(*Config) error

// NewConfig builds Config via the supplied options and fills in defaults.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = fallbackLocale
	}

	if cfg.Loader == nil {
		loaders := make([]PackLoader, 0, len(cfg.packDirs)+1)
		for _, dir := range cfg.packDirs {
			loaders = append(loaders, NewDirLoader(dir))
		}
		loaders = append(loaders, NewEmbeddedLoader())
		cfg.Loader = NewChainLoader(loaders...)
	}

	if cfg.Store == nil {
		cfg.Store = NewPackStore(cfg.Loader, cfg.Logger)
	}

	return cfg, nil
}

// BuildDecoder assembles the pipeline from the configured parts.
func (cfg *Config) BuildDecoder() (*Decoder, error) {
	normalizer := NewNormalizer(cfg.Store, cfg.Logger)
	normalizer.stripUnknown = cfg.stripUnknown

	return &Decoder{
		defaultLocale: cfg.DefaultLocale,
		store:         cfg.Store,
		normalizer:    normalizer,
		matcher:       NewPatternMatcher(cfg.Store, cfg.Logger),
		renderer:      NewResponseRenderer(cfg.Store, cfg.Logger),
		clock:         cfg.Clock,
		loc:           cfg.Location,
		logger:        cfg.Logger,
		hooks:         append([]DecodeHook(nil), cfg.Hooks...),
	}, nil
}

// WithDefaultLocale sets the locale used when a decode call passes none.
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithPackDir adds an on-disk pack directory that overrides the embedded
// packs. May be given multiple times; earlier directories win.
func WithPackDir(dir string) Option {
	return func(c *Config) error {
		if dir != "" {
			c.packDirs = append(c.packDirs, dir)
		}
		return nil
	}
}

// WithLoader replaces the pack loader entirely.
func WithLoader(loader PackLoader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

// WithStore injects a shared pack store, letting several decoders reuse one
// cache.
func WithStore(store *PackStore) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) error {
		c.Clock = clock
		return nil
	}
}

// WithLocation sets the timezone resolved times are expressed in.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		c.Location = loc
		return nil
	}
}

// WithLogger sets the structured logger used across the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithDecodeHooks registers hooks run around every decode call.
func WithDecodeHooks(hooks ...DecodeHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// WithUntranslatedStripping drops words the vocabulary could not translate
// from the normalized sentence instead of leaving them in place.
func WithUntranslatedStripping() Option {
	return func(c *Config) error {
		c.stripUnknown = true
		return nil
	}
}
