package docskit

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-docskit/internal/logging"
	"github.com/goliatone/go-docskit/internal/registry"
)

// Config is everything Build needs: site metadata, nav, content texts,
// OpenAPI sources and logging. All content is pre-loaded text; loading and
// embedding are the caller's concern.
type Config struct {
	Site        Site
	Nav         NavConfig
	Content     map[string]string
	Specs       []SpecSource
	DefaultPath string
	Logging     LoggingConfig

	// Logger overrides the built-in provider when set.
	Logger Logger
}

// LoggingConfig selects the built-in structured logging provider. Disabled
// means a no-op logger.
type LoggingConfig struct {
	Enabled   bool
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns a config with logging defaults filled in.
func DefaultConfig() Config {
	return Config{
		Content: map[string]string{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports configuration mistakes as a field-keyed error map.
func (c Config) Validate() error {
	errs := validation.Errors{}
	if err := c.Nav.Validate(); err != nil {
		errs["nav"] = err
	}
	if c.Logging.Enabled {
		if err := c.Logging.validate(); err != nil {
			errs["logging"] = err
		}
	}
	return errs.Filter()
}

func (l LoggingConfig) validate() error {
	errs := validation.Errors{}
	switch strings.ToLower(l.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		errs["level"] = validation.NewError("validation_logging_level", "unknown logging level")
	}
	switch strings.ToLower(l.Format) {
	case "", "json", "console", "pretty":
	default:
		errs["format"] = validation.NewError("validation_logging_format", "unknown logging format")
	}
	return errs.Filter()
}

func (c Config) logger() (Logger, error) {
	if c.Logger != nil {
		return c.Logger, nil
	}
	if !c.Logging.Enabled {
		return logging.NoOp(), nil
	}
	return logging.NewProvider(logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.AddSource,
	})
}

func (c Config) params() registry.Params {
	return registry.Params{
		Site:        c.Site,
		Nav:         c.Nav,
		Content:     c.Content,
		Specs:       c.Specs,
		DefaultPath: c.DefaultPath,
	}
}
