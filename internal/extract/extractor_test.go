package extract

import (
	"reflect"
	"testing"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

func TestExtract_BrandCalled(t *testing.T) {
	delta := Extract("I want a logo called Nimbus", models.SlotSet{})

	if delta.BrandName != "Nimbus" {
		t.Errorf("BrandName = %q, want %q", delta.BrandName, "Nimbus")
	}
	if !delta.NeedsDesign {
		t.Error("NeedsDesign should be true for a logo request")
	}
}

func TestExtract_BrandNamed(t *testing.T) {
	delta := Extract(`a slogan for my startup named "zephyr"`, models.SlotSet{})

	// "named" outranks "for": patterns are tried in order.
	if delta.BrandName != "Zephyr" {
		t.Errorf("BrandName = %q, want %q", delta.BrandName, "Zephyr")
	}
	if !delta.NeedsCopy {
		t.Error("NeedsCopy should be true for a slogan request")
	}
}

func TestExtract_BrandFor(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"make something for Acme", "Acme"},
		{"make a logo for Acme that pops", "Acme"},
		{"landing page for Blue Bottle Co", "Blue Bottle Co"},
		{"a logo for the best company", ""}, // stop word immediately
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			delta := Extract(tt.text, models.SlotSet{})
			if delta.BrandName != tt.want {
				t.Errorf("BrandName = %q, want %q", delta.BrandName, tt.want)
			}
		})
	}
}

func TestExtract_NoBrand(t *testing.T) {
	delta := Extract("hey", models.SlotSet{})
	if delta.BrandName != "" {
		t.Errorf("BrandName = %q, want unset", delta.BrandName)
	}
	if delta.NeedsDesign || delta.NeedsCopy {
		t.Error("no task flags should be set for a greeting")
	}
}

func TestExtract_SkipsKnownBrand(t *testing.T) {
	prior := models.SlotSet{BrandName: "Nimbus"}
	delta := Extract("actually call it Acme, named Acme", prior)
	if delta.BrandName != "" {
		t.Errorf("BrandName delta = %q, want empty when brand already known", delta.BrandName)
	}
}

func TestExtract_TaskFlags(t *testing.T) {
	tests := []struct {
		text       string
		wantDesign bool
		wantCopy   bool
	}{
		{"I need a logo", true, false},
		{"write me a tagline", false, true},
		{"logo and slogan please", true, true},
		{"hello there", false, false},
		{"a full brand identity package", true, false},
		{"copy for my landing page", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			delta := Extract(tt.text, models.SlotSet{})
			if delta.NeedsDesign != tt.wantDesign {
				t.Errorf("NeedsDesign = %v, want %v", delta.NeedsDesign, tt.wantDesign)
			}
			if delta.NeedsCopy != tt.wantCopy {
				t.Errorf("NeedsCopy = %v, want %v", delta.NeedsCopy, tt.wantCopy)
			}
		})
	}
}

func TestExtract_StyleFirstCategoryWins(t *testing.T) {
	// "sleek" (modern) and "retro" (vintage) both present: modern is
	// declared first in the table and must win.
	delta := Extract("something sleek but also retro", models.SlotSet{})
	if delta.Style != "modern" {
		t.Errorf("Style = %q, want %q (table order tie-break)", delta.Style, "modern")
	}
}

func TestExtract_Industry(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"a crypto payment startup", "fintech"},
		{"an online learning course", "education"},
		{"we do machine learning", "education"}, // "learning" (education) is declared before tech
		{"a technology company", "tech"},
		{"a fitness app", "saas"}, // "app" (saas) is declared before "fitness" (healthcare)
		{"hello", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			delta := Extract(tt.text, models.SlotSet{})
			if delta.Industry != tt.want {
				t.Errorf("Industry = %q, want %q", delta.Industry, tt.want)
			}
		})
	}
}

func TestExtract_ColorsFirstSeenOrderCapped(t *testing.T) {
	delta := Extract("use teal, gold, red and navy", models.SlotSet{})
	// First-seen order in the text, capped at 3.
	want := []string{"teal", "gold", "red"}
	if !reflect.DeepEqual(delta.Colors, want) {
		t.Errorf("Colors = %v, want %v", delta.Colors, want)
	}
}

func TestExtract_ProductDescription(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "after that, truncated at period",
			text: "an app that helps people invest easily. also make it blue",
			want: "helps people invest easily",
		},
		{
			name: "too short rejected",
			text: "a logo for Acme",
			want: "",
		},
		{
			name: "first separator decides",
			text: "a thing for x that connects freelancers with great clients",
			// " for " is found first; its candidate spans the rest of the
			// text and is accepted.
			want: "x that connects freelancers with great clients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := Extract(tt.text, models.SlotSet{})
			if delta.ProductDescription != tt.want {
				t.Errorf("ProductDescription = %q, want %q", delta.ProductDescription, tt.want)
			}
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "a modern purple logo called Nimbus for an app that helps people invest easily."
	first := Extract(text, models.SlotSet{})
	for i := 0; i < 10; i++ {
		if got := Extract(text, models.SlotSet{}); !reflect.DeepEqual(got, first) {
			t.Fatalf("Extract not deterministic: run %d = %+v, first = %+v", i, got, first)
		}
	}
}
