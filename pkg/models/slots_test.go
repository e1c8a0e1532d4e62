package models

import (
	"reflect"
	"testing"
)

func TestSlotSet_Merge_StickyBrand(t *testing.T) {
	s := SlotSet{}

	s.Merge(SlotSet{BrandName: "Nimbus"})
	if s.BrandName != "Nimbus" {
		t.Fatalf("BrandName = %q, want %q", s.BrandName, "Nimbus")
	}

	// A later delta with a different brand must not overwrite.
	s.Merge(SlotSet{BrandName: "Acme"})
	if s.BrandName != "Nimbus" {
		t.Errorf("BrandName = %q after second merge, want %q", s.BrandName, "Nimbus")
	}
}

func TestSlotSet_Merge_BooleansOnlyTurnTrue(t *testing.T) {
	s := SlotSet{}

	s.Merge(SlotSet{NeedsDesign: true})
	if !s.NeedsDesign {
		t.Fatal("NeedsDesign should be true after merge")
	}

	// Merging a delta with the flag false must not revert it.
	s.Merge(SlotSet{NeedsCopy: true})
	if !s.NeedsDesign {
		t.Error("NeedsDesign reverted to false")
	}
	if !s.NeedsCopy {
		t.Error("NeedsCopy should be true after merge")
	}

	s.Merge(SlotSet{})
	if !s.NeedsDesign || !s.NeedsCopy {
		t.Error("flags reverted after empty merge")
	}
}

func TestSlotSet_Merge_OptionalFieldsSetOnce(t *testing.T) {
	s := SlotSet{}

	s.Merge(SlotSet{Style: "modern", Colors: []string{"purple", "cyan"}, Industry: "fintech"})
	s.Merge(SlotSet{Style: "vintage", Colors: []string{"red"}, Industry: "saas"})

	if s.Style != "modern" {
		t.Errorf("Style = %q, want %q", s.Style, "modern")
	}
	if !reflect.DeepEqual(s.Colors, []string{"purple", "cyan"}) {
		t.Errorf("Colors = %v, want [purple cyan]", s.Colors)
	}
	if s.Industry != "fintech" {
		t.Errorf("Industry = %q, want %q", s.Industry, "fintech")
	}
}

func TestSlotSet_Merge_FillsUnsetFields(t *testing.T) {
	s := SlotSet{BrandName: "Nimbus"}

	s.Merge(SlotSet{ProductDescription: "helps people invest easily"})
	if s.ProductDescription != "helps people invest easily" {
		t.Errorf("ProductDescription = %q, want it set", s.ProductDescription)
	}
}

func TestSlotSet_Merge_ManyDeltaSequences(t *testing.T) {
	// Whatever order deltas arrive in, a true flag never reverts.
	deltas := []SlotSet{
		{NeedsDesign: true},
		{BrandName: "Acme"},
		{},
		{NeedsCopy: true},
		{BrandName: "Other", NeedsDesign: false},
		{},
	}

	s := SlotSet{}
	for i, d := range deltas {
		s.Merge(d)
		if i >= 0 && !s.NeedsDesign {
			t.Fatalf("NeedsDesign false after delta %d", i)
		}
	}
	if s.BrandName != "Acme" {
		t.Errorf("BrandName = %q, want %q", s.BrandName, "Acme")
	}
}

func TestSlotSet_HasBrandHasTask(t *testing.T) {
	s := SlotSet{}
	if s.HasBrand() || s.HasTask() {
		t.Error("empty slot set should have no brand and no task")
	}

	s.BrandName = "Nimbus"
	s.NeedsCopy = true
	if !s.HasBrand() {
		t.Error("HasBrand should be true")
	}
	if !s.HasTask() {
		t.Error("HasTask should be true")
	}
}

func TestSlotSet_Clone_Independent(t *testing.T) {
	s := SlotSet{BrandName: "Nimbus", Colors: []string{"red", "blue"}}
	c := s.Clone()

	c.Colors[0] = "green"
	if s.Colors[0] != "red" {
		t.Error("Clone shares the colors slice with the original")
	}
}

func TestSlotSet_IsEmpty(t *testing.T) {
	s := SlotSet{}
	if !s.IsEmpty() {
		t.Error("zero slot set should be empty")
	}
	s.NeedsCopy = true
	if s.IsEmpty() {
		t.Error("slot set with a task flag should not be empty")
	}
}
