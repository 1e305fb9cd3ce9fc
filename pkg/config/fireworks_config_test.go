package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultFireworksConfig 测试默认配置值
func TestDefaultFireworksConfig(t *testing.T) {
	cfg := DefaultFireworksConfig()

	if cfg.MaxBursts != 5 {
		t.Errorf("MaxBursts: got %d, want 5", cfg.MaxBursts)
	}
	if !cfg.AutoSpawnEnabled() {
		t.Error("AutoSpawn: got false, want true")
	}
	if cfg.AutoSpawnInterval() != 2*time.Second {
		t.Errorf("AutoSpawnInterval: got %v, want 2s", cfg.AutoSpawnInterval())
	}
	if cfg.ParticleCount != (Range{Min: 15, Max: 25}) {
		t.Errorf("ParticleCount: got %+v", cfg.ParticleCount)
	}
	if cfg.ParticleSpeed != (Range{Min: 2, Max: 5}) {
		t.Errorf("ParticleSpeed: got %+v", cfg.ParticleSpeed)
	}
	if cfg.ParticleSize != (Range{Min: 2, Max: 6}) {
		t.Errorf("ParticleSize: got %+v", cfg.ParticleSize)
	}
	if len(cfg.Palette) != 4 {
		t.Errorf("Palette: got %d entries, want 4", len(cfg.Palette))
	}
	if cfg.PaletteHues {
		t.Error("PaletteHues: got true, want false")
	}

	// 修改副本不应影响包级默认调色板
	cfg.Palette[0] = "changed"
	if DefaultPalette[0] == "changed" {
		t.Error("DefaultFireworksConfig should copy the default palette")
	}
}

func TestFireworksConfig_WithDefaults(t *testing.T) {
	off := false

	tests := []struct {
		name  string
		input FireworksConfig
		check func(*testing.T, FireworksConfig)
	}{
		{
			name:  "zero config gets every default",
			input: FireworksConfig{},
			check: func(t *testing.T, cfg FireworksConfig) {
				if cfg.MaxBursts != DefaultMaxBursts {
					t.Errorf("MaxBursts: got %d", cfg.MaxBursts)
				}
				if !cfg.AutoSpawnEnabled() {
					t.Error("AutoSpawn should default to true")
				}
				if cfg.AutoSpawnIntervalMs != DefaultAutoSpawnIntervalMs {
					t.Errorf("AutoSpawnIntervalMs: got %d", cfg.AutoSpawnIntervalMs)
				}
				if cfg.ParticleCount.Min != 15 || cfg.ParticleCount.Max != 25 {
					t.Errorf("ParticleCount: got %+v", cfg.ParticleCount)
				}
				if len(cfg.Palette) != len(DefaultPalette) {
					t.Errorf("Palette: got %v", cfg.Palette)
				}
			},
		},
		{
			name:  "explicit autoSpawn false is kept",
			input: FireworksConfig{AutoSpawn: &off},
			check: func(t *testing.T, cfg FireworksConfig) {
				if cfg.AutoSpawnEnabled() {
					t.Error("AutoSpawn: got true, want false")
				}
			},
		},
		{
			name: "configured values are kept",
			input: FireworksConfig{
				MaxBursts:           9,
				AutoSpawnIntervalMs: 500,
				ParticleCount:       Range{Min: 3, Max: 4},
				Palette:             []string{"hsl(200, 80%, 70%)"},
			},
			check: func(t *testing.T, cfg FireworksConfig) {
				if cfg.MaxBursts != 9 {
					t.Errorf("MaxBursts: got %d, want 9", cfg.MaxBursts)
				}
				if cfg.AutoSpawnInterval() != 500*time.Millisecond {
					t.Errorf("AutoSpawnInterval: got %v", cfg.AutoSpawnInterval())
				}
				if cfg.ParticleCount != (Range{Min: 3, Max: 4}) {
					t.Errorf("ParticleCount: got %+v", cfg.ParticleCount)
				}
				if cfg.ParticleSpeed != (Range{Min: 2, Max: 5}) {
					t.Errorf("ParticleSpeed should fall back to default, got %+v", cfg.ParticleSpeed)
				}
				if len(cfg.Palette) != 1 {
					t.Errorf("Palette: got %v", cfg.Palette)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.input.WithDefaults())
		})
	}
}

func TestFireworksConfig_WithDefaultsDoesNotAlias(t *testing.T) {
	on := true
	palette := []string{"hsl(10, 80%, 70%)"}
	src := FireworksConfig{AutoSpawn: &on, Palette: palette}

	cfg := src.WithDefaults()
	*cfg.AutoSpawn = false
	cfg.Palette[0] = "mutated"

	if !on {
		t.Error("WithDefaults should copy AutoSpawn")
	}
	if palette[0] != "hsl(10, 80%, 70%)" {
		t.Error("WithDefaults should copy Palette")
	}
}

func TestFireworksConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       FireworksConfig
		wantErr   bool
		wantRange bool
	}{
		{name: "defaults are valid", cfg: DefaultFireworksConfig()},
		{name: "zero config is valid", cfg: FireworksConfig{}},
		{name: "negative max bursts", cfg: FireworksConfig{MaxBursts: -1}, wantErr: true},
		{name: "negative interval", cfg: FireworksConfig{AutoSpawnIntervalMs: -5}, wantErr: true},
		{
			name:      "inverted speed range",
			cfg:       FireworksConfig{ParticleSpeed: Range{Min: 5, Max: 2}},
			wantErr:   true,
			wantRange: true,
		},
		{
			name:      "negative size",
			cfg:       FireworksConfig{ParticleSize: Range{Min: -1, Max: 2}},
			wantErr:   true,
			wantRange: true,
		},
		{
			name:      "particle count below one",
			cfg:       FireworksConfig{ParticleCount: Range{Min: 0, Max: 3}},
			wantErr:   true,
			wantRange: true,
		},
		{
			name:      "fractional particle count",
			cfg:       FireworksConfig{ParticleCount: Range{Min: 15.5, Max: 15.9}},
			wantErr:   true,
			wantRange: true,
		},
		{
			name:      "fractional particle count max",
			cfg:       FireworksConfig{ParticleCount: Range{Min: 15, Max: 20.5}},
			wantErr:   true,
			wantRange: true,
		},
		{
			name: "fractional speed is fine",
			cfg:  FireworksConfig{ParticleSpeed: Range{Min: 1.5, Max: 2.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantRange && !errors.Is(err, ErrInvalidRange) {
				t.Errorf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestFireworksConfig_Sanitize(t *testing.T) {
	def := DefaultFireworksConfig()
	off := false
	cfg := FireworksConfig{
		MaxBursts:           -3,
		AutoSpawn:           &off,
		AutoSpawnIntervalMs: 500,
		ParticleCount:       Range{Min: 15.5, Max: 15.9},
		ParticleSpeed:       Range{Min: 5, Max: 2},
		ParticleSize:        Range{Min: 1, Max: 3},
		PaletteHues:         true,
	}

	got := cfg.Sanitize()

	if err := got.Validate(); err != nil {
		t.Fatalf("sanitized config is invalid: %v", err)
	}
	// 无效字段换成默认值
	if got.MaxBursts != def.MaxBursts {
		t.Errorf("MaxBursts = %d, want %d", got.MaxBursts, def.MaxBursts)
	}
	if got.ParticleCount != def.ParticleCount {
		t.Errorf("ParticleCount = %+v, want %+v", got.ParticleCount, def.ParticleCount)
	}
	if got.ParticleSpeed != def.ParticleSpeed {
		t.Errorf("ParticleSpeed = %+v, want %+v", got.ParticleSpeed, def.ParticleSpeed)
	}
	// 有效字段保持不变
	if got.AutoSpawnEnabled() {
		t.Error("explicit autoSpawn false must survive Sanitize")
	}
	if got.AutoSpawnIntervalMs != 500 {
		t.Errorf("AutoSpawnIntervalMs = %d, want 500", got.AutoSpawnIntervalMs)
	}
	if got.ParticleSize != (Range{Min: 1, Max: 3}) {
		t.Errorf("ParticleSize = %+v, want {1 3}", got.ParticleSize)
	}
	if !got.PaletteHues {
		t.Error("PaletteHues must survive Sanitize")
	}
}

func TestLoadFireworksConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *FireworksConfig)
	}{
		{
			name: "full config",
			yamlContent: `
maxBursts: 8
autoSpawn: false
autoSpawnIntervalMs: 1500
particleCount:
  min: 10
  max: 12
particleSpeed:
  min: 1
  max: 3
particleSize:
  min: 4
  max: 4
palette:
  - "hsl(200, 80%, 70%)"
paletteHues: true
`,
			validate: func(t *testing.T, cfg *FireworksConfig) {
				if cfg.MaxBursts != 8 {
					t.Errorf("expected maxBursts = 8, got %d", cfg.MaxBursts)
				}
				if cfg.AutoSpawnEnabled() {
					t.Error("expected autoSpawn = false")
				}
				if cfg.AutoSpawnIntervalMs != 1500 {
					t.Errorf("expected interval = 1500, got %d", cfg.AutoSpawnIntervalMs)
				}
				if cfg.ParticleSize != (Range{Min: 4, Max: 4}) {
					t.Errorf("expected size [4,4], got %+v", cfg.ParticleSize)
				}
				if !cfg.PaletteHues {
					t.Error("expected paletteHues = true")
				}
			},
		},
		{
			name:        "partial config gets defaults",
			yamlContent: "maxBursts: 3\n",
			validate: func(t *testing.T, cfg *FireworksConfig) {
				if cfg.MaxBursts != 3 {
					t.Errorf("expected maxBursts = 3, got %d", cfg.MaxBursts)
				}
				if !cfg.AutoSpawnEnabled() {
					t.Error("expected autoSpawn default true")
				}
				if cfg.ParticleCount != (Range{Min: 15, Max: 25}) {
					t.Errorf("expected default count range, got %+v", cfg.ParticleCount)
				}
			},
		},
		{
			name:        "invalid range",
			yamlContent: "particleSpeed:\n  min: 9\n  max: 1\n",
			wantErr:     true,
			errContains: "particleSpeed",
		},
		{
			name:        "invalid yaml",
			yamlContent: "maxBursts: [oops",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fireworks.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			cfg, err := LoadFireworksConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadFireworksConfig_MissingFile(t *testing.T) {
	_, err := LoadFireworksConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

// TestLoadFireworksConfig_Embedded 验证仓库自带的默认配置可以加载
func TestLoadFireworksConfig_Embedded(t *testing.T) {
	cfg, err := LoadFireworksConfig("../../data/fireworks.yaml")
	if err != nil {
		t.Fatalf("failed to load data/fireworks.yaml: %v", err)
	}
	def := DefaultFireworksConfig()
	if cfg.MaxBursts != def.MaxBursts || cfg.AutoSpawnIntervalMs != def.AutoSpawnIntervalMs {
		t.Errorf("data/fireworks.yaml drifted from defaults: %+v", cfg)
	}
}
