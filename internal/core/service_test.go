// ABOUTME: Tests for service load/save behavior and change notification
// ABOUTME: Verifies corrupt-data recovery, snapshot isolation and swallowed write failures
package core

import (
	"errors"
	"testing"
	"time"

	"github.com/harper/vitus/internal/models"
	"github.com/harper/vitus/internal/storage"
)

// fixedClock pins the calendar for deterministic date logic.
func fixedClock(date string) func() time.Time {
	t, _ := time.Parse(models.DateLayout, date)
	return func() time.Time { return t }
}

func newTestService(store storage.Store, date string) *Service {
	s := New(store, WithClock(fixedClock(date)))
	s.Load()
	return s
}

// failingStore rejects every write but serves reads.
type failingStore struct {
	inner *storage.MemoryStore
}

func (f *failingStore) Get(key string) ([]byte, error) { return f.inner.Get(key) }
func (f *failingStore) Set(key string, value []byte) error {
	return errors.New("disk full")
}

func TestService_LoadMissingKey(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")

	doc := svc.Document()
	if len(doc.Meds) != 0 || len(doc.Cures) != 0 {
		t.Error("fresh store should load as an empty document")
	}
	if doc.Version != models.Version {
		t.Errorf("Version = %d, want %d", doc.Version, models.Version)
	}
}

func TestService_LoadCorruptData(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Set(storage.DocumentKey, []byte("{{{ not json")); err != nil {
		t.Fatal(err)
	}

	svc := newTestService(store, "2026-01-15")

	doc := svc.Document()
	if len(doc.Meds) != 0 {
		t.Error("corrupt data should yield a fresh empty document")
	}

	// The service must still be usable after a corrupt load.
	if _, err := svc.UpsertMed(models.Medication{Name: "Aspirin"}); err != nil {
		t.Fatalf("UpsertMed after corrupt load: %v", err)
	}
}

func TestService_LoadReadError(t *testing.T) {
	svc := New(&errStore{}, WithClock(fixedClock("2026-01-15")))
	svc.Load()

	if len(svc.Document().Meds) != 0 {
		t.Error("read error should yield a fresh empty document")
	}
}

type errStore struct{}

func (e *errStore) Get(key string) ([]byte, error)     { return nil, errors.New("io error") }
func (e *errStore) Set(key string, value []byte) error { return nil }

func TestService_PersistsAcrossInstances(t *testing.T) {
	store := storage.NewMemoryStore()

	svc := newTestService(store, "2026-01-15")
	stored, err := svc.UpsertMed(models.Medication{Name: "Aspirin", TotalQuantity: 20, RemainingQuantity: 20})
	if err != nil {
		t.Fatal(err)
	}

	// A second service over the same store sees the saved document.
	svc2 := newTestService(store, "2026-01-15")
	got, err := svc2.GetMed(stored.ID)
	if err != nil {
		t.Fatalf("GetMed() error = %v", err)
	}
	if got.Name != "Aspirin" || got.RemainingQuantity != 20 {
		t.Errorf("reloaded med = %+v", got)
	}
}

func TestService_WriteFailureKeepsMemoryState(t *testing.T) {
	store := &failingStore{inner: storage.NewMemoryStore()}
	svc := newTestService(store, "2026-01-15")

	stored, err := svc.UpsertMed(models.Medication{Name: "Aspirin"})
	if err != nil {
		t.Fatalf("UpsertMed() should not surface storage errors, got %v", err)
	}

	if _, err := svc.GetMed(stored.ID); err != nil {
		t.Error("in-memory state should survive a failed write")
	}
}

func TestService_SubscribersNotifiedOnSave(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")

	calls := 0
	svc.Subscribe(func() { calls++ })

	if _, err := svc.UpsertMed(models.Medication{Name: "Aspirin"}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("subscriber called %d times after one mutation, want 1", calls)
	}

	svc.ClearMissedDoses()
	if calls != 2 {
		t.Errorf("subscriber called %d times after two mutations, want 2", calls)
	}
}

func TestService_DocumentSnapshotIsolation(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")
	if _, err := svc.UpsertMed(models.Medication{Name: "Aspirin"}); err != nil {
		t.Fatal(err)
	}

	snap := svc.Document()
	snap.Meds[0].Name = "Tampered"

	if svc.ListMeds()[0].Name != "Aspirin" {
		t.Error("mutating a snapshot leaked into the live document")
	}
}

func TestService_UpdatedAtStamped(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-01-15")
	if _, err := svc.UpsertMed(models.Medication{Name: "Aspirin"}); err != nil {
		t.Fatal(err)
	}

	if got := svc.Document().UpdatedAt; got != "2026-01-15" {
		t.Errorf("UpdatedAt = %q, want 2026-01-15", got)
	}
}

func TestService_TodayYesterday(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(), "2026-03-01")

	if got := svc.Today(); got != "2026-03-01" {
		t.Errorf("Today() = %q, want 2026-03-01", got)
	}
	if got := svc.Yesterday(); got != "2026-02-28" {
		t.Errorf("Yesterday() = %q, want 2026-02-28", got)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&ValidationError{Message: "bad"}) {
		t.Error("IsValidation should match ValidationError")
	}
	if IsValidation(ErrMedicationNotFound) {
		t.Error("IsValidation should not match lookup errors")
	}
	if IsValidation(nil) {
		t.Error("IsValidation(nil) should be false")
	}
}
