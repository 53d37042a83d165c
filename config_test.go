package pick

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.DragThreshold != defaultDragThreshold {
		t.Errorf("DragThreshold = %v", c.DragThreshold)
	}
	if c.MaxPointers != defaultMaxPointers {
		t.Errorf("MaxPointers = %d", c.MaxPointers)
	}
	if c.PassthroughDepth != 0 {
		t.Errorf("PassthroughDepth = %d, want 0 (topmost only)", c.PassthroughDepth)
	}
}

func TestConfigValidate_FillsZeroValues(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.DragThreshold != defaultDragThreshold || c.MaxPointers != defaultMaxPointers {
		t.Errorf("defaults not filled: %+v", c)
	}
}

func TestConfigValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative drag threshold", Config{DragThreshold: -1}},
		{"negative passthrough depth", Config{PassthroughDepth: -1}},
		{"negative max pointers", Config{MaxPointers: -1}},
		{"negative query timeout", Config{QueryTimeout: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	doc := []byte(`
drag_threshold: 8
passthrough_depth: 2
max_pointers: 4
query_timeout: 5ms
disabled_backends: [physics]
`)
	c, err := LoadConfig(doc)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.DragThreshold != 8 || c.PassthroughDepth != 2 || c.MaxPointers != 4 {
		t.Errorf("loaded config = %+v", c)
	}
	if c.QueryTimeout != 5*time.Millisecond {
		t.Errorf("QueryTimeout = %v, want 5ms", c.QueryTimeout)
	}
	if len(c.DisabledBackends) != 1 || c.DisabledBackends[0] != "physics" {
		t.Errorf("DisabledBackends = %v", c.DisabledBackends)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig([]byte("drag_threshold: [oops")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := LoadConfig([]byte("drag_threshold: -3")); err == nil {
		t.Error("expected validation error")
	}
}
