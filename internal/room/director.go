package room

import (
	gomath "math"
	"time"

	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

const (
	fanStep = 0.04 // radians per frame

	introDuration = 600 * time.Millisecond
	introStagger  = 100 * time.Millisecond

	hoverInDuration  = 500 * time.Millisecond
	hoverOutDuration = 300 * time.Millisecond
	hoverTilt        = gomath.Pi / 10
	hoverLift        = 0.2
	smokeHoverScale  = 1.4
)

var (
	introEase    = BackOut(1.5)
	hoverInEase  = BackOut(2)
	hoverOutEase = BackOut(1.5)
)

// ChairOffset is the chair swing at t seconds: a sine whose amplitude eases off near
// its peaks.
func ChairOffset(t float64) float32 {
	s := gomath.Sin(t * 0.5)
	return float32(gomath.Pi / 8 * s * (1 - gomath.Abs(s)*0.3))
}

// FishOffset is the fish bob at t seconds.
func FishOffset(t float64) float32 {
	s := gomath.Sin(t * 1.5)
	return float32(0.12 * s * (1 - gomath.Abs(s)*0.1))
}

// ClockAngles returns the hour and minute hand angles in radians, clockwise from twelve.
// The minute hand carries the seconds and the hour hand carries the minutes.
func ClockAngles(t time.Time) (hour, minute float64) {
	h := float64(t.Hour() % 12)
	m := float64(t.Minute())
	s := float64(t.Second())
	minute = (m + s/60) * (2 * gomath.Pi / 60)
	hour = (h + m/60) * (2 * gomath.Pi / 12)
	return hour, minute
}

// Director runs the per-frame animations, the intro sequence, hover tweens and the
// day/night blend.
type Director struct {
	asm    *Assembly
	tweens *Tweens
	smoke  *material.Smoke
	mix    *material.Mix
	night  *ScalarTween
	wall   func() time.Time

	nightTransition time.Duration
	introPlayed     bool
}

// NewDirector creates a director for an assembled room. wall supplies the time shown
// by the clock.
func NewDirector(asm *Assembly, bank *Bank, wall func() time.Time, nightTransition time.Duration) *Director {
	if wall == nil {
		wall = time.Now
	}
	return &Director{
		asm:             asm,
		tweens:          NewTweens(),
		smoke:           bank.Smoke,
		mix:             bank.Mix,
		wall:            wall,
		nightTransition: nightTransition,
	}
}

// Tweens exposes the tween set.
func (d *Director) Tweens() *Tweens {
	return d.tweens
}

// Update advances every animation to now, the time since the room started.
func (d *Director) Update(now time.Duration) {
	secs := now.Seconds()
	if d.smoke != nil {
		d.smoke.Time = float32(secs)
	}
	if d.asm == nil {
		return
	}

	d.updateClock()
	for _, fan := range d.asm.XFans {
		fan.Rotation.X -= fanStep
	}
	for _, fan := range d.asm.YFans {
		fan.Rotation.Y -= fanStep
	}
	if chair := d.asm.ChairTop; chair != nil {
		chair.Rotation.Y = d.asm.Baselines[chair].Rotation.Y + ChairOffset(secs)
	}
	if fish := d.asm.Fish; fish != nil {
		fish.Position.Y = d.asm.Baselines[fish].Position.Y + FishOffset(secs)
	}

	d.tweens.Step(now)
	if d.night != nil && d.night.Step(now) {
		d.night = nil
	}
}

func (d *Director) updateClock() {
	if d.asm.HourHand == nil || d.asm.MinuteHand == nil {
		return
	}
	hour, minute := ClockAngles(d.wall())
	d.asm.MinuteHand.Rotation.X = -float32(minute)
	d.asm.HourHand.Rotation.X = -float32(hour)
}

// PlayIntro scales the intro objects up to unit size one after another. Missing objects
// are skipped without leaving a gap. It runs once.
func (d *Director) PlayIntro() {
	if d.asm == nil || d.introPlayed {
		return
	}
	d.introPlayed = true

	var delay time.Duration
	one := math.Vec3{X: 1, Y: 1, Z: 1}
	for _, key := range IntroOrder {
		n, ok := d.asm.Intro[key]
		if !ok {
			continue
		}
		d.tweens.To(n, ChannelScale, one, AllAxes, delay, introDuration, introEase)
		delay += introStagger
	}
}

// HoverStart grows target toward its hover pose.
func (d *Director) HoverStart(target *scene.Node) {
	d.hover(target, true)
}

// HoverEnd returns target to its baseline.
func (d *Director) HoverEnd(target *scene.Node) {
	d.hover(target, false)
}

func (d *Director) hover(n *scene.Node, in bool) {
	if d.asm == nil || n == nil {
		return
	}
	base, ok := d.asm.Baselines[n]
	if !ok {
		base = Baseline{Position: n.Position, Rotation: n.Rotation, Scale: n.Scale}
		d.asm.Baselines[n] = base
	}
	c := d.asm.Classes[n]
	d.tweens.CancelNode(n)

	dur, ease := hoverOutDuration, hoverOutEase
	if in {
		dur, ease = hoverInDuration, hoverInEase
	}

	if c.Coffee && d.asm.Smoke != nil {
		smokeScale := d.asm.Baselines[d.asm.Smoke].Scale
		if in {
			smokeScale = smokeScale.Scale(smokeHoverScale)
		}
		d.tweens.CancelNode(d.asm.Smoke)
		d.tweens.To(d.asm.Smoke, ChannelScale, smokeScale, AllAxes, 0, dur, ease)
	}

	scale := base.Scale
	if in {
		scale = base.Scale.Scale(c.HoverScale)
	}
	d.tweens.To(n, ChannelScale, scale, AllAxes, 0, dur, ease)

	if c.Tilt != TiltNone {
		rot := base.Rotation
		if in {
			if c.Tilt == TiltBack {
				rot.X -= hoverTilt
			} else {
				rot.X += hoverTilt
			}
		}
		d.tweens.To(n, ChannelRotation, rot, AxisX, 0, dur, ease)
	}

	if c.Lift {
		pos := base.Position
		if in {
			pos.Y += hoverLift
		}
		d.tweens.To(n, ChannelPosition, pos, AxisY, 0, dur, ease)
	}
}

// Night reports whether the room is heading to, or at, the night look.
func (d *Director) Night() bool {
	if d.night != nil {
		return d.night.To >= 1
	}
	return d.mix.Ratio >= 0.5
}

// SetNight blends the room materials toward night or day. A zero transition jumps.
func (d *Director) SetNight(night bool) {
	to := float32(0)
	if night {
		to = 1
	}
	if d.nightTransition <= 0 {
		d.mix.Ratio = to
		d.night = nil
		return
	}
	d.night = &ScalarTween{
		Value:    &d.mix.Ratio,
		From:     d.mix.Ratio,
		To:       to,
		Start:    d.tweens.Now(),
		Duration: d.nightTransition,
		Ease:     EaseInOut,
	}
}

// ToggleNight flips between day and night.
func (d *Director) ToggleNight() {
	d.SetNight(!d.Night())
}

func (d *Director) attach(asm *Assembly) {
	d.asm = asm
}
