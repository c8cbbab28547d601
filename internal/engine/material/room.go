package material

import (
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
)

// Section identifies one of the four structural regions of the room model.
type Section int

const (
	SectionNone Section = iota
	SectionFirst
	SectionSecond
	SectionThird
	SectionFourth
)

// Sections lists the room sections in texture-set order.
var Sections = [4]Section{SectionFirst, SectionSecond, SectionThird, SectionFourth}

var sectionNames = [...]string{"", "First", "Second", "Third", "Fourth"}
var sectionFiles = [...]string{"", "first", "second", "third", "fourth"}

// String returns the mesh name tag of the section.
func (s Section) String() string {
	if s < SectionNone || s > SectionFourth {
		return ""
	}
	return sectionNames[s]
}

// FilePrefix returns the lower-case texture file prefix of the section.
func (s Section) FilePrefix() string {
	if s < SectionNone || s > SectionFourth {
		return ""
	}
	return sectionFiles[s]
}

// Index returns the zero-based texture-set index, or -1 for SectionNone.
func (s Section) Index() int {
	return int(s) - 1
}

// Mix holds the day/night ratio shared by every room material: 0 is day, 1 is night.
type Mix struct {
	Ratio float32
}

// DayNight is the texture pair for one section.
type DayNight struct {
	Day   *texture.Texture
	Night *texture.Texture
}

// RoomTextures holds the eight room textures indexed by Section.Index.
type RoomTextures [4]DayNight

// Room blends a day and a night texture and gamma corrects the result.
type Room struct {
	Base
	Section Section
	Day     *texture.Texture
	Night   *texture.Texture
	Mix     *Mix
}

// BuildRoomMaterials creates the four section materials sharing one mix ratio. Textures
// are bound by reference and may still be loading.
func BuildRoomMaterials(textures RoomTextures, mix *Mix) [4]*Room {
	if mix == nil {
		mix = &Mix{}
	}
	var out [4]*Room
	for i, s := range Sections {
		out[i] = &Room{
			Base:    newBase(s.String()),
			Section: s,
			Day:     textures[i].Day,
			Night:   textures[i].Night,
			Mix:     mix,
		}
	}
	return out
}

// MixRatio returns the current blend factor.
func (m *Room) MixRatio() float32 {
	if m.Mix == nil {
		return 0
	}
	return m.Mix.Ratio
}

// Clone implements scene.Material. The clone shares textures and the mix ratio.
func (m *Room) Clone() scene.Material {
	c := *m
	c.Base = m.cloneBase()
	return &c
}
