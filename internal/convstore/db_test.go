package convstore

import (
	"path/filepath"
	"testing"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "conv.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_RoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.AppendMessage("c1", models.RoleUser, "I want a logo called Nimbus"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if err := db.MergeSlots("c1", models.SlotSet{BrandName: "Nimbus", NeedsDesign: true}); err != nil {
		t.Fatalf("MergeSlots: %v", err)
	}

	conv, err := db.Get("c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if conv.Slots.BrandName != "Nimbus" {
		t.Errorf("BrandName = %q, want %q", conv.Slots.BrandName, "Nimbus")
	}
	if len(conv.Messages) != 1 || conv.Messages[0].Seq != 1 {
		t.Errorf("Messages = %+v, want one message with seq 1", conv.Messages)
	}
}

func TestDB_Get_NotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Get("missing"); err != ErrNotFound {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestDB_StickyMergeAcrossReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conv.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = db.MergeSlots("c", models.SlotSet{BrandName: "Nimbus", NeedsCopy: true})
	db.Close()

	// Reopen: the sticky invariant must hold against persisted state.
	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	_ = db2.MergeSlots("c", models.SlotSet{BrandName: "Acme"})
	conv, err := db2.Get("c")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if conv.Slots.BrandName != "Nimbus" {
		t.Errorf("BrandName = %q, want %q", conv.Slots.BrandName, "Nimbus")
	}
	if !conv.Slots.NeedsCopy {
		t.Error("NeedsCopy lost across reload")
	}
}

func TestDB_SetPlanAndClear(t *testing.T) {
	db := openTestDB(t)

	plan := &models.Plan{
		BrandName: "Nimbus",
		Items: []models.WorkItem{
			{ID: "w1", Capability: models.CapabilityLogo, Cost: 50},
		},
		TotalCost: 50,
		Fee:       2.5,
	}
	if err := db.SetPlan("c", plan); err != nil {
		t.Fatalf("SetPlan: %v", err)
	}

	conv, _ := db.Get("c")
	if conv.Plan == nil || conv.Plan.TotalCost != 50 {
		t.Fatalf("Plan = %+v, want total 50", conv.Plan)
	}
	if conv.Plan.Items[0].Capability != models.CapabilityLogo {
		t.Errorf("item capability = %q, want logo", conv.Plan.Items[0].Capability)
	}

	if err := db.Clear("c"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := db.Get("c"); err != ErrNotFound {
		t.Errorf("Get after Clear err = %v, want ErrNotFound", err)
	}
}
