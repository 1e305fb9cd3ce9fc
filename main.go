package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/heartworks/pkg/app"
	"github.com/decker502/heartworks/pkg/config"
	"github.com/decker502/heartworks/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "烟花配置文件路径（默认使用内嵌的 data/fireworks.yaml）")
	sound := flag.Bool("sound", false, "为每次爆炸播放合成音效")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	fireworksApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Sound:      *sound,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := run(fireworksApp, ebiten.RunGame); err != nil {
		log.Fatal(err)
	}
}

// run 运行主循环，无论成功与否都会释放应用
// This will call Update() and Draw() repeatedly until the window is closed
func run(a *app.App, runGame func(ebiten.Game) error) error {
	defer a.Close()
	return runGame(a)
}
