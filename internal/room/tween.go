package room

import (
	"time"

	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(p float32) float32

// BackOut overshoots the target by an amount set by s, then settles.
func BackOut(s float32) Ease {
	return func(p float32) float32 {
		p--
		return p*p*((s+1)*p+s) + 1
	}
}

// EaseInOut is a symmetric quadratic ease.
func EaseInOut(p float32) float32 {
	if p < 0.5 {
		return 2 * p * p
	}
	p = -2*p + 2
	return 1 - p*p/2
}

// Channel is the transform property a tween drives.
type Channel int

const (
	ChannelScale Channel = iota
	ChannelRotation
	ChannelPosition
)

// Axes selects the vector components a tween writes.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ

	AllAxes = AxisX | AxisY | AxisZ
)

type tweenKey struct {
	node    *scene.Node
	channel Channel
}

// Tween animates one channel of one node from the value it has when the tween begins
// toward To.
type Tween struct {
	Node     *scene.Node
	Channel  Channel
	To       math.Vec3
	Axes     Axes
	Start    time.Duration
	Duration time.Duration
	Ease     Ease

	from  math.Vec3
	begun bool
}

func (t *Tween) target() *math.Vec3 {
	switch t.Channel {
	case ChannelRotation:
		return &t.Node.Rotation
	case ChannelPosition:
		return &t.Node.Position
	default:
		return &t.Node.Scale
	}
}

// apply writes the tween value at now and reports whether it has finished.
func (t *Tween) apply(now time.Duration) bool {
	if now < t.Start {
		return false
	}
	v := t.target()
	if !t.begun {
		t.from = *v
		t.begun = true
	}

	p := float32(1)
	if t.Duration > 0 {
		p = min(float32(now-t.Start)/float32(t.Duration), 1)
	}
	done := p >= 1

	var cur math.Vec3
	if done {
		cur = t.To
	} else {
		e := t.Ease(p)
		cur = t.from.Add(t.To.Sub(t.from).Scale(e))
	}
	if t.Axes&AxisX != 0 {
		v.X = cur.X
	}
	if t.Axes&AxisY != 0 {
		v.Y = cur.Y
	}
	if t.Axes&AxisZ != 0 {
		v.Z = cur.Z
	}
	return done
}

// Tweens holds at most one tween per node and channel, advanced by Step. Starting a
// tween replaces any in flight on the same node and channel.
type Tweens struct {
	active map[tweenKey]*Tween
	now    time.Duration
}

// NewTweens creates an empty set.
func NewTweens() *Tweens {
	return &Tweens{active: make(map[tweenKey]*Tween)}
}

// To starts a tween of node's channel toward to, beginning delay after the last step.
func (ts *Tweens) To(node *scene.Node, ch Channel, to math.Vec3, axes Axes, delay, duration time.Duration, ease Ease) *Tween {
	if ease == nil {
		ease = func(p float32) float32 { return p }
	}
	t := &Tween{
		Node:     node,
		Channel:  ch,
		To:       to,
		Axes:     axes,
		Start:    ts.now + delay,
		Duration: duration,
		Ease:     ease,
	}
	ts.active[tweenKey{node, ch}] = t
	return t
}

// Cancel stops the tween on node's channel, leaving the value where it is.
func (ts *Tweens) Cancel(node *scene.Node, ch Channel) {
	delete(ts.active, tweenKey{node, ch})
}

// CancelNode stops every tween on node.
func (ts *Tweens) CancelNode(node *scene.Node) {
	for _, ch := range []Channel{ChannelScale, ChannelRotation, ChannelPosition} {
		ts.Cancel(node, ch)
	}
}

// Active returns the tween on node's channel, if any.
func (ts *Tweens) Active(node *scene.Node, ch Channel) (*Tween, bool) {
	t, ok := ts.active[tweenKey{node, ch}]
	return t, ok
}

// Len returns the number of tweens still running or waiting to start.
func (ts *Tweens) Len() int {
	return len(ts.active)
}

// Step advances every tween to now. Finished tweens land exactly on their target.
func (ts *Tweens) Step(now time.Duration) {
	ts.now = now
	for k, t := range ts.active {
		if t.apply(now) {
			delete(ts.active, k)
		}
	}
}

// Now returns the time of the last step.
func (ts *Tweens) Now() time.Duration {
	return ts.now
}

// ScalarTween animates a single float, such as a shader mix ratio.
type ScalarTween struct {
	Value    *float32
	From, To float32
	Start    time.Duration
	Duration time.Duration
	Ease     Ease
}

// Step writes the value at now and reports whether the tween has finished.
func (s *ScalarTween) Step(now time.Duration) bool {
	if now < s.Start {
		return false
	}
	p := float32(1)
	if s.Duration > 0 {
		p = min(float32(now-s.Start)/float32(s.Duration), 1)
	}
	if p >= 1 {
		*s.Value = s.To
		return true
	}
	*s.Value = s.From + (s.To-s.From)*s.Ease(p)
	return false
}
