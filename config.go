package pick

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDragThreshold = 4.0 // pixels from press start
	defaultMaxPointers   = 10  // mouse plus nine touch contacts
)

// Config is the pipeline's recognized option surface. The zero value is
// usable after Validate fills in defaults; DefaultConfig returns the filled
// form directly.
type Config struct {
	// DragThreshold is the displacement in screen pixels, measured from
	// press start, before a press becomes a drag.
	DragThreshold float64 `yaml:"drag_threshold"`
	// PassthroughDepth is how many ranked hits beyond the topmost are
	// exposed to consumers and treated as hovered. 0 = topmost only.
	PassthroughDepth int `yaml:"passthrough_depth"`
	// MaxPointers limits concurrent live pointers. 0 uses the default.
	MaxPointers int `yaml:"max_pointers"`
	// QueryTimeout is the per-frame budget for backend queries. Zero means
	// no deadline; backends are still expected to be self-terminating.
	// In YAML this is a duration string ("5ms", "1s").
	QueryTimeout time.Duration `yaml:"-"`
	// DisabledBackends lists backend names skipped for every pointer.
	// Per-pointer toggles are a runtime API (Pipeline.SetBackendEnabled).
	DisabledBackends []string `yaml:"disabled_backends"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		DragThreshold: defaultDragThreshold,
		MaxPointers:   defaultMaxPointers,
	}
}

// Validate checks ranges and fills zero values with defaults.
func (c *Config) Validate() error {
	if c.DragThreshold < 0 {
		return fmt.Errorf("pick: drag_threshold must be >= 0, got %v", c.DragThreshold)
	}
	if c.DragThreshold == 0 {
		c.DragThreshold = defaultDragThreshold
	}
	if c.PassthroughDepth < 0 {
		return fmt.Errorf("pick: passthrough_depth must be >= 0, got %d", c.PassthroughDepth)
	}
	if c.MaxPointers < 0 {
		return fmt.Errorf("pick: max_pointers must be >= 0, got %d", c.MaxPointers)
	}
	if c.MaxPointers == 0 {
		c.MaxPointers = defaultMaxPointers
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("pick: query_timeout must be >= 0, got %v", c.QueryTimeout)
	}
	return nil
}

// LoadConfig parses a YAML document into a validated Config.
func LoadConfig(data []byte) (Config, error) {
	var doc struct {
		Config       `yaml:",inline"`
		QueryTimeout string `yaml:"query_timeout"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse pick config: %w", err)
	}
	c := doc.Config
	if doc.QueryTimeout != "" {
		d, err := time.ParseDuration(doc.QueryTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse pick config: query_timeout: %w", err)
		}
		c.QueryTimeout = d
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
