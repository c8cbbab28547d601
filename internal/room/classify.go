// Package room assembles the portfolio room from its model file and drives it: hitboxes,
// materials, animation, pointer interaction and teardown.
package room

import (
	"strings"

	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
)

// Finish says which material a mesh receives.
type Finish int

const (
	// SurfaceAuthored keeps whatever material the model file supplied.
	SurfaceAuthored Finish = iota
	SurfaceWater
	SurfaceGlass
	SurfaceBubble
	// SurfaceIcon keeps the authored material even when a section tag also matches.
	SurfaceIcon
	SurfaceRoom
)

var finishNames = [...]string{"authored", "water", "glass", "bubble", "icon", "room"}

func (f Finish) String() string {
	if f < 0 || int(f) >= len(finishNames) {
		return "unknown"
	}
	return finishNames[f]
}

// FanAxis is the local axis a fan blade spins about.
type FanAxis int

const (
	FanNone FanAxis = iota
	FanX
	FanY
)

// ClockHand identifies a hand of the wall clock.
type ClockHand int

const (
	HandNone ClockHand = iota
	HandHour
	HandMinute
)

// Icon is a social or profile icon.
type Icon int

const (
	IconNone Icon = iota
	IconGitHub
	IconYouTube
	IconInstagram
	IconLinkedIn
	IconTFT
)

var iconTags = []struct {
	tag  string
	icon Icon
}{
	{"GitHub", IconGitHub},
	{"YouTube", IconYouTube},
	{"Instagram", IconInstagram},
	{"LinkedIn", IconLinkedIn},
	{"TFT_Icon", IconTFT},
}

// groupIcons arrive from the model as groups of primitives.
var groupIcons = map[Icon]bool{
	IconGitHub:    true,
	IconYouTube:   true,
	IconInstagram: true,
	IconLinkedIn:  true,
}

func (i Icon) String() string {
	for _, t := range iconTags {
		if t.icon == i {
			return t.tag
		}
	}
	return "None"
}

// Hitbox is how a node takes part in pointer picking.
type Hitbox int

const (
	HitboxNone Hitbox = iota
	// HitboxBox gets an enlarged invisible box around its world bounds.
	HitboxBox
	// HitboxRotated is a box turned a quarter of a right angle about Y.
	HitboxRotated
	// HitboxSelf uses the mesh itself.
	HitboxSelf
)

// Tilt is the hover rotation about X.
type Tilt int

const (
	TiltNone Tilt = iota
	TiltBack
	TiltForward
)

// IntroOrder lists the objects scaled in after load, in order.
var IntroOrder = []string{
	"Hanging_Plank_1", "Hanging_Plank_2",
	"My_Work_Button", "About_Button", "Contact_Button",
	"GitHub", "YouTube", "Instagram", "LinkedIn", "TFT_Icon",
}

var meshIntroKeys = []string{
	"Hanging_Plank_1", "Hanging_Plank_2", "My_Work_Button", "About_Button",
	"Contact_Button", "TFT_Icon",
}

var selfHitboxTags = []string{"Bulb", "Cactus", "Kirby"}

// Class is the closed classification of one node, computed once from its name and kind.
// Several fields may be set at once; every later decision reads the record rather than
// the name.
type Class struct {
	Section material.Section
	Surface Finish
	Icon    Icon
	// IconGroup marks a group standing in for a multi-material icon.
	IconGroup bool

	Fan      FanAxis
	Hand     ClockHand
	Fish     bool
	ChairTop bool
	Coffee   bool
	// Screen is the monitor, clickable as its own hitbox.
	Screen bool

	// Intro is the intro key for the node, or "".
	Intro  string
	Hitbox Hitbox
	// Baseline asks for the rest transform to be recorded.
	Baseline bool

	HoverScale float32
	Tilt       Tilt
	Lift       bool
}

// Classify computes the class of a node.
func Classify(name string, kind scene.Kind) Class {
	c := Class{HoverScale: 1.4}
	has := func(tag string) bool { return strings.Contains(name, tag) }

	for _, t := range iconTags {
		if has(t.tag) {
			c.Icon = t.icon
			break
		}
	}
	c.IconGroup = kind == scene.KindGroup && groupIcons[c.Icon]

	for _, s := range material.Sections {
		if has(s.String()) {
			c.Section = s
		}
	}
	switch {
	case has("Water"):
		c.Surface = SurfaceWater
	case has("Glass"):
		c.Surface = SurfaceGlass
	case has("Bubble"):
		c.Surface = SurfaceBubble
	case c.Icon != IconNone:
		c.Surface = SurfaceIcon
	case c.Section != material.SectionNone:
		c.Surface = SurfaceRoom
	}

	if has("Fan") {
		c.Fan = FanY
		if has("Fan_2") || has("Fan_4") {
			c.Fan = FanX
		}
	}
	switch {
	case has("Hour_Hand"):
		c.Hand = HandHour
	case has("Minute_Hand"):
		c.Hand = HandMinute
	}
	c.Fish = has("Fish_Fourth")
	c.ChairTop = has("Chair_Top")
	c.Coffee = has("Coffee")
	c.Screen = name == "Screen"

	if c.IconGroup {
		c.Intro = c.Icon.String()
	} else {
		for _, key := range meshIntroKeys {
			if has(key) {
				c.Intro = key
				break
			}
		}
	}

	if has("Raycaster") {
		c.Hitbox = HitboxBox
		if has("Headphones") {
			c.Hitbox = HitboxRotated
		}
		for _, tag := range selfHitboxTags {
			if has(tag) {
				c.Hitbox = HitboxSelf
				break
			}
		}
	}
	if c.Screen {
		c.Hitbox = HitboxSelf
	}

	c.Baseline = c.IconGroup || c.Screen || c.Fish || c.ChairTop || c.Hand != HandNone ||
		c.Hitbox != HitboxNone || has("Hover") || has("Key")

	if has("Fish") {
		c.HoverScale = 1.2
	}
	switch {
	case has("About_Button"):
		c.Tilt = TiltBack
	case has("Contact_Button"), has("My_Work_Button"), c.Icon != IconNone:
		c.Tilt = TiltForward
	}
	c.Lift = has("Name_Letter")
	return c
}

// HoverEligible reports whether a hitbox with this name starts a hover animation.
func HoverEligible(name string) bool {
	return strings.Contains(name, "Hover")
}

// PointerAffordance reports whether a hitbox with this name shows the pointer cursor.
func PointerAffordance(name string) bool {
	return strings.Contains(name, "Pointer") || name == "Screen"
}
