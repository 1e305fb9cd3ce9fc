package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 烟花效果默认值
const (
	// DefaultMaxBursts 同时存在的烟花数量上限
	DefaultMaxBursts = 5

	// DefaultAutoSpawnIntervalMs 自动生成烟花的间隔（毫秒）
	DefaultAutoSpawnIntervalMs = 2000
)

// DefaultPalette 默认粉红色调色板
var DefaultPalette = []string{
	"hsl(320, 80%, 70%)",
	"hsl(340, 80%, 70%)",
	"hsl(0, 80%, 70%)",
	"hsl(20, 80%, 70%)",
}

// ErrInvalidRange 表示范围配置 min > max 或出现负值
var ErrInvalidRange = errors.New("invalid range")

// Range 随机取值范围
//
// 粒子数量、速度、大小都在此范围内均匀随机。
type Range struct {
	// Min 最小值
	Min float64 `yaml:"min"`

	// Max 最大值
	Max float64 `yaml:"max"`
}

// IsZero 报告范围是否未配置
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Span 返回 Max - Min
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// FireworksConfig 烟花效果配置
//
// 配置文件位置: data/fireworks.yaml
// 所有缺省字段在 WithDefaults 中补齐。
type FireworksConfig struct {
	// MaxBursts 同时存在的烟花上限（自动生成时使用 MaxBursts-1 作为余量）
	MaxBursts int `yaml:"maxBursts"`

	// AutoSpawn 是否自动生成烟花，未配置时为 true
	AutoSpawn *bool `yaml:"autoSpawn,omitempty"`

	// AutoSpawnIntervalMs 自动生成间隔（毫秒）
	AutoSpawnIntervalMs int `yaml:"autoSpawnIntervalMs"`

	// ParticleCount 每个烟花的粒子数量范围
	ParticleCount Range `yaml:"particleCount"`

	// ParticleSpeed 粒子初速度范围（单位/帧）
	ParticleSpeed Range `yaml:"particleSpeed"`

	// ParticleSize 粒子大小范围
	ParticleSize Range `yaml:"particleSize"`

	// Palette 颜色列表，格式 "hsl(h, s%, l%)"
	// 默认不参与色相生成，见 PaletteHues
	Palette []string `yaml:"palette"`

	// PaletteHues 为 true 时从 Palette 中随机取色相，否则使用 320-360 的粉红色相
	PaletteHues bool `yaml:"paletteHues"`
}

// DefaultFireworksConfig 返回默认配置
func DefaultFireworksConfig() FireworksConfig {
	autoSpawn := true
	palette := make([]string, len(DefaultPalette))
	copy(palette, DefaultPalette)

	return FireworksConfig{
		MaxBursts:           DefaultMaxBursts,
		AutoSpawn:           &autoSpawn,
		AutoSpawnIntervalMs: DefaultAutoSpawnIntervalMs,
		ParticleCount:       Range{Min: 15, Max: 25},
		ParticleSpeed:       Range{Min: 2, Max: 5},
		ParticleSize:        Range{Min: 2, Max: 6},
		Palette:             palette,
	}
}

// WithDefaults 返回补齐缺省字段后的配置副本
//
// 零值字段使用默认值替换，
// AutoSpawn 仅在未配置（nil）时取默认值 true。
func (c FireworksConfig) WithDefaults() FireworksConfig {
	def := DefaultFireworksConfig()

	if c.MaxBursts == 0 {
		c.MaxBursts = def.MaxBursts
	}
	if c.AutoSpawn == nil {
		c.AutoSpawn = def.AutoSpawn
	} else {
		v := *c.AutoSpawn
		c.AutoSpawn = &v
	}
	if c.AutoSpawnIntervalMs == 0 {
		c.AutoSpawnIntervalMs = def.AutoSpawnIntervalMs
	}
	if c.ParticleCount.IsZero() {
		c.ParticleCount = def.ParticleCount
	}
	if c.ParticleSpeed.IsZero() {
		c.ParticleSpeed = def.ParticleSpeed
	}
	if c.ParticleSize.IsZero() {
		c.ParticleSize = def.ParticleSize
	}
	if len(c.Palette) == 0 {
		c.Palette = def.Palette
	} else {
		palette := make([]string, len(c.Palette))
		copy(palette, c.Palette)
		c.Palette = palette
	}

	return c
}

// AutoSpawnEnabled 报告是否开启自动生成（nil 视为开启）
func (c FireworksConfig) AutoSpawnEnabled() bool {
	return c.AutoSpawn == nil || *c.AutoSpawn
}

// AutoSpawnInterval 返回自动生成间隔
func (c FireworksConfig) AutoSpawnInterval() time.Duration {
	return time.Duration(c.AutoSpawnIntervalMs) * time.Millisecond
}

// Validate 验证配置有效性
//
// 检查：
//   - MaxBursts、AutoSpawnIntervalMs 不能为负
//   - 各范围 Min <= Max 且非负
//   - 粒子数量范围为整数，下限至少为 1
//
// 返回:
//   - error: 验证失败时返回错误，范围错误可用 errors.Is(err, ErrInvalidRange) 判断
func (c FireworksConfig) Validate() error {
	if c.MaxBursts < 0 {
		return fmt.Errorf("maxBursts should be >= 0, got %d", c.MaxBursts)
	}
	if c.AutoSpawnIntervalMs < 0 {
		return fmt.Errorf("autoSpawnIntervalMs should be >= 0, got %d", c.AutoSpawnIntervalMs)
	}
	if err := checkCountRange(c.ParticleCount); err != nil {
		return err
	}
	if err := checkRange("particleSpeed", c.ParticleSpeed); err != nil {
		return err
	}
	return checkRange("particleSize", c.ParticleSize)
}

// Sanitize 返回把无效字段替换为默认值后的配置副本
//
// 只替换 Validate 会拒绝的字段，其余字段（包括 AutoSpawn）保持调用方的设置。
func (c FireworksConfig) Sanitize() FireworksConfig {
	def := DefaultFireworksConfig()

	if c.MaxBursts < 0 {
		c.MaxBursts = def.MaxBursts
	}
	if c.AutoSpawnIntervalMs < 0 {
		c.AutoSpawnIntervalMs = def.AutoSpawnIntervalMs
	}
	if checkCountRange(c.ParticleCount) != nil {
		c.ParticleCount = def.ParticleCount
	}
	if checkRange("particleSpeed", c.ParticleSpeed) != nil {
		c.ParticleSpeed = def.ParticleSpeed
	}
	if checkRange("particleSize", c.ParticleSize) != nil {
		c.ParticleSize = def.ParticleSize
	}
	return c
}

func checkRange(name string, r Range) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s: min(%.1f) > max(%.1f): %w", name, r.Min, r.Max, ErrInvalidRange)
	}
	if r.Min < 0 {
		return fmt.Errorf("%s: min(%.1f) < 0: %w", name, r.Min, ErrInvalidRange)
	}
	return nil
}

// checkCountRange 粒子数量必须是整数，未配置（零值）时由 WithDefaults 补齐
func checkCountRange(r Range) error {
	if err := checkRange("particleCount", r); err != nil {
		return err
	}
	if r.Min != math.Trunc(r.Min) || r.Max != math.Trunc(r.Max) {
		return fmt.Errorf("particleCount: min(%g) and max(%g) must be integers: %w", r.Min, r.Max, ErrInvalidRange)
	}
	if !r.IsZero() && r.Min < 1 {
		return fmt.Errorf("particleCount: min(%.1f) < 1: %w", r.Min, ErrInvalidRange)
	}
	return nil
}

// ParseFireworksConfig 解析 YAML 格式的烟花配置并补齐默认值
func ParseFireworksConfig(data []byte) (*FireworksConfig, error) {
	var cfg FireworksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fireworks config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fireworks config: %w", err)
	}

	cfg = cfg.WithDefaults()
	return &cfg, nil
}

// LoadFireworksConfig 加载烟花配置
//
// 从指定路径加载 YAML 格式的配置文件。
//
// 参数:
//   - path: 配置文件路径（如 "data/fireworks.yaml"）
//
// 返回:
//   - *FireworksConfig: 补齐默认值后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadFireworksConfig(path string) (*FireworksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fireworks config: %w", err)
	}

	return ParseFireworksConfig(data)
}
