package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	runs := []Prediction{
		{TempMax: 18, TempMin: 2, Lluvia: 0, Mes: 6, PredictedTemp: -1.2, FrostRisk: true},
		{TempMax: 25, TempMin: 12, Lluvia: 4, Mes: 1, PredictedTemp: 9.8},
	}
	for i := range runs {
		if err := store.Record(&runs[i]); err != nil {
			t.Fatalf("failed to record run %d: %v", i, err)
		}
		// ULIDs order by millisecond; keep the two runs in distinct ones
		time.Sleep(2 * time.Millisecond)
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}

	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}

	// Newest first
	if recent[0].PredictedTemp != 9.8 {
		t.Errorf("expected newest record first, got %+v", recent[0])
	}
	if !recent[1].FrostRisk {
		t.Errorf("expected frost risk on older record, got %+v", recent[1])
	}
}

func TestRecord_GeneratesULID(t *testing.T) {
	store := openTestStore(t)

	p := &Prediction{TempMax: 20, TempMin: 5, Mes: 3, PredictedTemp: 4.5}
	if err := store.Record(p); err != nil {
		t.Fatalf("failed to record: %v", err)
	}

	if len(p.ID) != 26 {
		t.Errorf("expected 26-char ULID, got %q", p.ID)
	}
}

func TestRecent_LimitAndEmpty(t *testing.T) {
	store := openTestStore(t)

	recent, err := store.Recent(5)
	if err != nil {
		t.Fatalf("failed to read empty history: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected empty history, got %d records", len(recent))
	}

	for i := 0; i < 4; i++ {
		if err := store.Record(&Prediction{TempMax: 20, TempMin: 5, Mes: 1, PredictedTemp: float64(i)}); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
	}

	recent, err = store.Recent(2)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected limit of 2, got %d", len(recent))
	}
}
