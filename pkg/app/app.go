// Package app 提供烟花应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/heartworks/pkg/audio"
	"github.com/decker502/heartworks/pkg/config"
	"github.com/decker502/heartworks/pkg/fireworks"
	"github.com/decker502/heartworks/pkg/host"
	"github.com/decker502/heartworks/pkg/render"
	"github.com/decker502/heartworks/pkg/render/ebitensurface"
)

// FrameDuration 每个 tick 推进的虚拟时间（Ebitengine 默认 60 TPS）
const FrameDuration = time.Second / 60

// 声音音量（线性 0..1）
const soundVolume = 0.4

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 烟花配置文件路径，为空则使用内嵌配置
	ConfigPath string
	// Sound 为每次爆炸播放合成音效
	Sound bool
}

// App 是烟花应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	registry   *render.Registry
	surface    *ebitensurface.Surface
	scheduler  *host.Scheduler
	controller *fireworks.Controller
	player     *audio.Player

	verbose     bool
	paused      bool
	showOverlay bool
	face        text.Face

	width  int
	height int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化烟花应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时使用内置默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fwCfg, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("烟花配置加载失败: %w", err)
	}

	a := &App{
		registry:  render.NewRegistry(),
		surface:   ebitensurface.New(config.GameWindowWidth, config.GameWindowHeight),
		scheduler: host.NewScheduler(),
		verbose:   cfg.Verbose,
		face:      text.NewGoXFace(basicfont.Face7x13),
		width:     config.GameWindowWidth,
		height:    config.GameWindowHeight,
	}
	if err := a.registry.Register(config.DefaultSurfaceID, a.surface); err != nil {
		return nil, err
	}

	var opts []fireworks.Option
	if cfg.Sound {
		player := audio.NewPlayer(soundVolume)
		if err := player.Init(); err != nil {
			// 没有声卡时继续运行，只是没有声音
			log.Printf("[App] Warning: sound disabled: %v", err)
		} else {
			a.player = player
			opts = append(opts, fireworks.WithSpawnListener(player.PlayBurst))
		}
	}

	a.controller = fireworks.NewController(fireworks.Host{
		Surfaces: a.registry,
		Frames:   a.scheduler,
		Timers:   a.scheduler,
	}, opts...)

	if !a.controller.Initialize(config.DefaultSurfaceID, fwCfg) {
		return nil, fmt.Errorf("烟花效果初始化失败: surface %q", config.DefaultSurfaceID)
	}
	log.Printf("[App] Fireworks started (maxBursts=%d, autoSpawn=%v)",
		fwCfg.MaxBursts, fwCfg.AutoSpawnEnabled())

	return a, nil
}

// Update 更新烟花逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.handleInput()
	a.Step()
	return nil
}

// handleInput 处理鼠标、触摸和键盘输入
func (a *App) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.Click(x, y)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.Click(x, y)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.controller.Clear()
		log.Printf("[App] Cleared all bursts")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.controller.SpawnBurst(float64(a.width)/2, float64(a.height)/2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.showOverlay = !a.showOverlay
	}
}

// Click 在窗口坐标 (x, y) 处生成一次爆炸
func (a *App) Click(x, y int) {
	a.controller.SpawnBurstAtPoint(fireworks.PointerEvent{
		ClientX: float64(x),
		ClientY: float64(y),
	})
}

// TogglePause 暂停或恢复烟花动画与自动生成
func (a *App) TogglePause() {
	if a.paused {
		a.controller.Resume()
	} else {
		a.controller.Pause()
	}
	a.paused = !a.paused
	log.Printf("[App] Paused: %v", a.paused)
}

// Step 推进一帧虚拟时间：先触发到期的定时器，再运行帧回调
func (a *App) Step() {
	a.scheduler.Advance(FrameDuration)
	a.scheduler.RunFrames()
}

// Draw 绘制烟花画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.surface.Present(screen)

	if a.showOverlay {
		a.drawOverlay(screen)
	}
}

// drawOverlay 在左上角绘制状态信息
func (a *App) drawOverlay(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, a.StatusText(), a.face, op)
}

// StatusText 返回状态叠加层显示的文本
func (a *App) StatusText() string {
	st := a.controller.Status()
	state := "running"
	if a.paused {
		state = "paused"
	}
	return fmt.Sprintf("bursts: %d  particles: %d  %s  auto: %v  tps: %.0f\n"+
		"click: burst  space: centre  p: pause  c: clear  tab: overlay  f11: fullscreen",
		st.BurstCount, st.TotalParticleCount, state, st.IsAutoSpawning, ebiten.ActualTPS())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 画布始终铺满窗口，窗口尺寸变化时通知烟花控制器
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != a.width || outsideHeight != a.height) {
		a.width = outsideWidth
		a.height = outsideHeight
		a.controller.HandleResize(float64(outsideWidth), float64(outsideHeight))
		log.Printf("[App] Resized to %dx%d", outsideWidth, outsideHeight)
	}
	return a.width, a.height
}

// Controller 返回烟花控制器
func (a *App) Controller() *fireworks.Controller {
	return a.controller
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 停止烟花效果并释放音频
func (a *App) Close() {
	a.controller.Destroy()
	if a.player != nil {
		a.player.Close()
	}
	a.registry.Unregister(config.DefaultSurfaceID)
	log.Printf("[App] Closed")
}
