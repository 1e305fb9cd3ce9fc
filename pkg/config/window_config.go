package config

// 窗口配置常量
const (
	// GameWindowWidth 默认窗口宽度
	GameWindowWidth = 800

	// GameWindowHeight 默认窗口高度
	GameWindowHeight = 600

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Heart Fireworks"

	// DefaultSurfaceID 默认画布 ID
	DefaultSurfaceID = "fireworks-canvas"

	// DefaultConfigPath 内嵌默认配置路径
	DefaultConfigPath = "data/fireworks.yaml"
)
