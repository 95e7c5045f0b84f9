// ABOUTME: Tests for cure CRUD and schedule editing
// ABOUTME: Verifies validation, replace-in-place updates and ErrCureNotFound
package core

import (
	"errors"
	"testing"

	"github.com/harper/vitus/internal/models"
	"github.com/harper/vitus/internal/storage"
)

func TestUpsertCure_Validation(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")

	tests := []struct {
		name string
		cure models.Cure
	}{
		{"empty name", models.Cure{Start: "2026-01-01", End: "2026-01-31"}},
		{"missing start", models.Cure{Name: "Test", End: "2026-01-31"}},
		{"missing end", models.Cure{Name: "Test", Start: "2026-01-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpsertCure(tt.cure); !IsValidation(err) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}

	if len(svc.ListCures()) != 0 {
		t.Error("rejected upserts must not mutate the document")
	}
}

func TestUpsertCure_CreateAndUpdate(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")

	created, err := svc.UpsertCure(models.Cure{
		Name:   "Winter boost",
		Start:  "2026-01-01",
		End:    "2026-01-31",
		MedIDs: []string{"med_a"},
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpsertCure(models.Cure{
		ID:    created.ID,
		Name:  "Winter boost v2",
		Start: "2026-01-01",
		End:   "2026-02-15",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Winter boost v2" || updated.End != "2026-02-15" {
		t.Errorf("updated = %+v", updated)
	}

	cures := svc.ListCures()
	if len(cures) != 1 {
		t.Fatalf("len(cures) = %d, want 1", len(cures))
	}
}

func TestDeleteCure_DoesNotArchive(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")
	cure, _ := svc.UpsertCure(models.Cure{Name: "Test", Start: "2026-01-01", End: "2026-01-31"})

	if err := svc.DeleteCure(cure.ID); err != nil {
		t.Fatal(err)
	}
	if len(svc.ListCures()) != 0 {
		t.Error("cure not deleted")
	}
	if len(svc.ListArchive()) != 0 {
		t.Error("manual deletion must not create an archive entry")
	}
}

func TestSetCureSchedule(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")
	cure, _ := svc.UpsertCure(models.Cure{
		Name:   "Test",
		Start:  "2026-01-01",
		End:    "2026-01-31",
		MedIDs: []string{"med_a"},
	})

	if err := svc.SetCureSchedule(cure.ID, "med_a", []string{"07:30", "", "19:30"}); err != nil {
		t.Fatal(err)
	}

	got := svc.ListCures()[0].Schedule["med_a"]
	if len(got) != 2 || got[0] != "07:30" || got[1] != "19:30" {
		t.Errorf("schedule = %v, want [07:30 19:30]", got)
	}
}

func TestSetCureSchedule_Errors(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")
	cure, _ := svc.UpsertCure(models.Cure{Name: "Test", Start: "2026-01-01", End: "2026-01-31"})

	if err := svc.SetCureSchedule(cure.ID, "", []string{"08:00"}); !IsValidation(err) {
		t.Errorf("empty med id: error = %v, want ValidationError", err)
	}
	if err := svc.SetCureSchedule(cure.ID, "med_a", []string{"", "  "}); !IsValidation(err) {
		t.Errorf("no usable times: error = %v, want ValidationError", err)
	}
	if err := svc.SetCureSchedule("cure_missing", "med_a", []string{"08:00"}); !errors.Is(err, ErrCureNotFound) {
		t.Errorf("unknown cure: error = %v, want ErrCureNotFound", err)
	}
}
