package material

import "github.com/Faultbox/portfolio-room/internal/engine/scene"

// Colours of the unlit helpers.
const (
	WaterColor   = 0x6B9EB5
	BubbleColor  = 0xFFFFFF
	BackingColor = 0xF0EDE4
)

// NewWaterMaterial creates the translucent aquarium water.
func NewWaterMaterial() *Basic {
	m := NewBasic("Water", WaterColor)
	m.state.Transparent = true
	m.state.Opacity = 0.4
	m.state.DepthWrite = false
	return m
}

// NewBubbleMaterial creates the flat white bubble material.
func NewBubbleMaterial() *Basic {
	return NewBasic("Bubble", BubbleColor)
}

// NewHitboxMaterial creates the invisible material carried by hitbox proxies.
func NewHitboxMaterial() *Basic {
	m := NewBasic("Hitbox", 0xFFFFFF)
	m.state.Transparent = true
	m.state.Opacity = 0
	m.state.Visible = false
	return m
}

// NewBackingFallback creates the neutral tile used when no authored backing exists.
func NewBackingFallback() *Basic {
	m := NewBasic("Backing_Fallback", BackingColor)
	m.state.Side = scene.DoubleSide
	return m
}
