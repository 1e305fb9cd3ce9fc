// Package audio 为烟花爆炸提供合成音效
//
// 音效全部由振荡器实时合成，不依赖任何音频资源文件。
// 音高由爆炸的色相决定：偏紫的烟花低沉，偏红的烟花清亮。
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/heartworks/pkg/fireworks"
)

// SampleRate 合成与播放使用的采样率
const SampleRate = beep.SampleRate(44100)

const (
	popDuration = 180 * time.Millisecond
	popAttack   = 5 * time.Millisecond
	popRelease  = 150 * time.Millisecond

	// 色相 0..360 映射到 minPopFreq..maxPopFreq
	minPopFreq = 440.0
	maxPopFreq = 880.0

	// 泛音（高八度）相对基音的音量
	overtoneMix = 0.25
)

// PopFrequency 返回色相对应的基音频率（Hz）
func PopFrequency(hue float64) float64 {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	return minPopFreq + (maxPopFreq-minPopFreq)*hue/360
}

// NewPop 合成一次短促的"啵"声
func NewPop(hue, volume float64, rate beep.SampleRate) beep.Streamer {
	freq := PopFrequency(hue)

	fund := newEnvelope(newSine(freq, popDuration, rate), popDuration, popAttack, popRelease, rate)
	over := newEnvelope(newSine(freq*2, popDuration, rate), popDuration, popAttack, popRelease/2, rate)

	mixed := beep.Mix(
		newVolume(fund, 1-overtoneMix),
		newVolume(over, overtoneMix),
	)
	return newVolume(mixed, volume)
}

// sine 正弦振荡器，播放 duration 后结束
type sine struct {
	freq     float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func newSine(freq float64, duration time.Duration, rate beep.SampleRate) *sine {
	return &sine{freq: freq, total: rate.N(duration), rate: rate}
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// envelope 线性起音 / 释音包络
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	releaseStart := e.total - e.release

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume 线性音量转换为 effects.Volume 的对数音量，0 表示静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Player 把每次烟花爆炸转换成一个音效，混入扬声器输出
//
// PlayBurst 的签名与 fireworks.WithSpawnListener 匹配，可直接注册。
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer 创建播放器，volume 为 0..1 的线性音量
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
	}
}

// Init 初始化扬声器并开始播放混音器
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	log.Printf("[Audio] Speaker initialized at %d Hz", SampleRate)
	return nil
}

// PlayBurst 播放一次爆炸音效，音高取自爆炸的色相
// 扬声器未初始化时不做任何事
func (p *Player) PlayBurst(b *fireworks.Burst) {
	if b == nil || len(b.Particles) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	pop := NewPop(b.Particles[0].Hue, p.volume, SampleRate)
	speaker.Lock()
	p.mixer.Add(pop)
	speaker.Unlock()
}

// Close 停止所有正在播放的音效
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Active 返回混音器中仍在播放的音效数量
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return p.mixer.Len()
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.mixer.Len()
}
