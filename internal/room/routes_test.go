package room

import (
	"testing"

	"github.com/Faultbox/portfolio-room/internal/config"
)

func TestRouteResolve(t *testing.T) {
	table := RoutesFromConfig(config.DefaultRoutes())

	tests := []struct {
		name   string
		target string
		kind   RouteKind
		ok     bool
	}{
		{"About_Button_Hover_Raycaster_Pointer", "/about", RouteInternal, true},
		{"My_Work_Button_Hover_Raycaster_Pointer", "/projects", RouteInternal, true},
		{"GitHub_Icon_Backing", "https://github.com/dannywillowliu-uchi", RouteExternal, true},
		{"GitHub_Hover_Raycaster_Pointer", "https://github.com/dannywillowliu-uchi", RouteExternal, true},
		{"Coffee_Hover_Raycaster_Pointer", "/coffee", RouteInternal, true},
		{"Plant_Second", "", RouteInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := table.Resolve(tt.name)
			if ok != tt.ok {
				t.Fatalf("Resolve ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if r.Target != tt.target || r.Kind() != tt.kind {
				t.Errorf("Resolve = %+v (%v), want %s (%v)", r, r.Kind(), tt.target, tt.kind)
			}
		})
	}
}

func TestRouteFirstMatchWins(t *testing.T) {
	table := RouteTable{
		{Tag: "Button", Target: "/first"},
		{Tag: "About_Button", Target: "/second"},
	}
	if r, _ := table.Resolve("About_Button"); r.Target != "/first" {
		t.Errorf("got %s, want the earlier entry", r.Target)
	}
}

func TestRouteKind(t *testing.T) {
	if k := (Route{Target: "mailto:me@example.com", External: true}).Kind(); k != RouteDirect {
		t.Errorf("mailto kind = %v", k)
	}
	if k := (Route{Target: "https://example.com", External: true}).Kind(); k != RouteExternal {
		t.Errorf("url kind = %v", k)
	}
	if k := (Route{Target: "/about"}).Kind(); k != RouteInternal {
		t.Errorf("path kind = %v", k)
	}
}

func TestRoutesFromConfigSkipsEmptyTags(t *testing.T) {
	table := RoutesFromConfig([]config.RouteConfig{{Tag: "", Route: "/x"}, {Tag: "A", Route: "/a"}})
	if len(table) != 1 || table[0].Tag != "A" {
		t.Errorf("table = %+v", table)
	}
}
