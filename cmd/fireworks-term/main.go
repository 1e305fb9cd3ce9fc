// fireworks-term 在终端中播放爱心烟花
//
// 每个终端单元格对应 8x16 个画布单位，爱心显示为 ♥，拖尾显示为 ·。
// 鼠标点击生成爆炸；p 暂停/恢复，c 清空，空格在中央生成，q 或 Esc 退出。
//
// 用法:
//
//	go run ./cmd/fireworks-term [--config data/fireworks.yaml] [--sound] [--verbose [--log fireworks-term.log]]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/heartworks/pkg/audio"
	"github.com/decker502/heartworks/pkg/config"
	"github.com/decker502/heartworks/pkg/fireworks"
	"github.com/decker502/heartworks/pkg/host"
	"github.com/decker502/heartworks/pkg/render"
)

const frameDuration = time.Second / 60

type termApp struct {
	screen     tcell.Screen
	surface    *render.TerminalSurface
	registry   *render.Registry
	scheduler  *host.Scheduler
	controller *fireworks.Controller

	paused      bool
	lastButtons tcell.ButtonMask
}

func newTermApp(screen tcell.Screen, cfg config.FireworksConfig, cellW, cellH float64, opts ...fireworks.Option) (*termApp, error) {
	t := &termApp{
		screen:    screen,
		surface:   render.NewTerminalSurface(screen, cellW, cellH),
		registry:  render.NewRegistry(),
		scheduler: host.NewScheduler(),
	}
	if err := t.registry.Register(config.DefaultSurfaceID, t.surface); err != nil {
		return nil, err
	}

	t.controller = fireworks.NewController(fireworks.Host{
		Surfaces: t.registry,
		Frames:   t.scheduler,
		Timers:   t.scheduler,
	}, opts...)
	if !t.controller.Initialize(config.DefaultSurfaceID, cfg) {
		return nil, fmt.Errorf("surface %q not found", config.DefaultSurfaceID)
	}
	return t, nil
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (t *termApp) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'p':
			if t.paused {
				t.controller.Resume()
			} else {
				t.controller.Pause()
			}
			t.paused = !t.paused
			log.Printf("[Term] Paused: %v", t.paused)
		case 'c':
			t.controller.Clear()
		case ' ':
			w, h := t.controller.Size()
			t.controller.SpawnBurst(w/2, h/2)
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && t.lastButtons&tcell.Button1 == 0
		t.lastButtons = buttons
		if pressed {
			col, row := ev.Position()
			x, y := t.surface.CellToSurface(col, row)
			t.controller.SpawnBurstAtPoint(fireworks.PointerEvent{ClientX: x, ClientY: y})
		}

	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := t.screen.Size()
		w, h := t.surface.SizeForCells(cols, rows)
		t.controller.HandleResize(w, h)
		log.Printf("[Term] Resized to %dx%d cells", cols, rows)
	}
	return true
}

// tick 推进一帧并刷新屏幕
func (t *termApp) tick() {
	t.scheduler.Advance(frameDuration)
	t.scheduler.RunFrames()
	t.drawStatus()
	t.screen.Show()
}

func (t *termApp) drawStatus() {
	_, rows := t.screen.Size()
	st := t.controller.Status()
	line := fmt.Sprintf(" bursts %d  particles %d  [click] burst [space] centre [p] pause [c] clear [q] quit",
		st.BurstCount, st.TotalParticleCount)
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range line {
		t.screen.SetContent(i, rows-1, r, nil, style)
	}
}

// pollEvents 把终端事件转发到 events，done 关闭或屏幕结束后返回
func (t *termApp) pollEvents(done <-chan struct{}, events chan<- tcell.Event) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (t *termApp) run() {
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go t.pollEvents(done, eventChan)

	for {
		select {
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.tick()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "烟花配置文件路径（默认使用内置配置）")
	sound := flag.Bool("sound", false, "为每次爆炸播放合成音效")
	verbose := flag.Bool("verbose", false, "启用详细日志输出（写入 --log 指定的文件）")
	logPath := flag.String("log", "fireworks-term.log", "日志文件路径（终端被屏幕占用）")
	cellW := flag.Float64("cell-width", render.DefaultCellWidth, "每个单元格的画布宽度")
	cellH := flag.Float64("cell-height", render.DefaultCellHeight, "每个单元格的画布高度")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "打开日志文件失败: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.DefaultFireworksConfig()
	if *configPath != "" {
		loaded, err := config.LoadFireworksConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "烟花配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	var opts []fireworks.Option
	if *sound {
		player := audio.NewPlayer(0.4)
		if err := player.Init(); err != nil {
			log.Printf("[Term] Warning: sound disabled: %v", err)
		} else {
			defer player.Close()
			opts = append(opts, fireworks.WithSpawnListener(player.PlayBurst))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建终端屏幕失败: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化终端屏幕失败: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	t, err := newTermApp(screen, cfg, *cellW, *cellH, opts...)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	t.run()
	t.controller.Destroy()
	screen.Fini()
}
