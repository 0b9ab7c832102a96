package compare

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Mani-Chandra65/Weather-App/internal/owm"
)

// stubFetcher returns canned snapshots keyed by city name.
type stubFetcher struct {
	snapshots map[string]owm.CurrentWeather
	err       error
}

func (f *stubFetcher) CurrentByCity(_ context.Context, city string) (owm.CurrentWeather, error) {
	if f.err != nil {
		return owm.CurrentWeather{}, f.err
	}
	snap, ok := f.snapshots[city]
	if !ok {
		return owm.CurrentWeather{}, fmt.Errorf("unexpected city %q", city)
	}
	return snap, nil
}

func snapshot(id int64, name string, temp float64) owm.CurrentWeather {
	return owm.CurrentWeather{
		ID:   id,
		Name: name,
		Main: owm.MainMetrics{Temp: temp},
	}
}

func newStub(snaps ...owm.CurrentWeather) *stubFetcher {
	f := &stubFetcher{snapshots: make(map[string]owm.CurrentWeather)}
	for _, s := range snaps {
		f.snapshots[s.Name] = s
	}
	return f
}

func TestAddRejectsOverflow(t *testing.T) {
	var snaps []owm.CurrentWeather
	for i := 0; i < 6; i++ {
		snaps = append(snaps, snapshot(int64(i+1), fmt.Sprintf("City%d", i+1), float64(i)))
	}
	set := NewSet(newStub(snaps...))

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := set.Add(ctx, snaps[i].Name); err != nil {
			t.Fatalf("Add(%s) failed: %v", snaps[i].Name, err)
		}
	}

	err := set.Add(ctx, "City6")
	if !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if err.Error() != "Maximum 5 cities allowed for comparison" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if set.Len() != 5 {
		t.Errorf("set size = %d after rejected add, want 5", set.Len())
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	london := snapshot(100, "London", 12)
	fetcher := newStub(london)
	// A different query string resolving to the same location ID must
	// still be rejected.
	fetcher.snapshots["London,UK"] = london

	set := NewSet(fetcher)
	ctx := context.Background()

	if err := set.Add(ctx, "London"); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	err := set.Add(ctx, "London,UK")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err.Error() != "City already in comparison" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if set.Len() != 1 {
		t.Errorf("set size = %d after rejected add, want 1", set.Len())
	}
}

func TestAddPropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("boom")
	set := NewSet(&stubFetcher{err: fetchErr})

	if err := set.Add(context.Background(), "Paris"); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("set size = %d after failed add, want 0", set.Len())
	}
}

func TestRemove(t *testing.T) {
	a := snapshot(1, "A", 10)
	b := snapshot(2, "B", 20)
	set := NewSet(newStub(a, b))
	ctx := context.Background()

	set.Add(ctx, "A")
	set.Add(ctx, "B")

	set.Remove(1)
	if set.Len() != 1 {
		t.Fatalf("set size = %d after remove, want 1", set.Len())
	}

	// Removing an absent ID is a no-op.
	set.Remove(42)
	if set.Len() != 1 {
		t.Errorf("set size changed by removing absent ID")
	}

	entries := set.Entries()
	if entries[0].Snapshot.ID != 2 {
		t.Errorf("remaining entry ID = %d, want 2", entries[0].Snapshot.ID)
	}
}

func TestEntriesFlagsTies(t *testing.T) {
	set := NewSet(newStub(
		snapshot(1, "Cold", 10),
		snapshot(2, "Warm1", 25),
		snapshot(3, "Warm2", 25),
	))
	ctx := context.Background()
	for _, name := range []string{"Cold", "Warm1", "Warm2"} {
		if err := set.Add(ctx, name); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}

	entries := set.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if !entries[0].Coldest || entries[0].Hottest {
		t.Errorf("entry 0 flags = {hottest %v, coldest %v}, want coldest only", entries[0].Hottest, entries[0].Coldest)
	}
	if entries[0].Color != "#50C878" {
		t.Errorf("entry 0 color = %q, want the 10-20°C band", entries[0].Color)
	}
	for i := 1; i < 3; i++ {
		if !entries[i].Hottest {
			t.Errorf("entry %d not flagged hottest despite tie", i)
		}
		if entries[i].Coldest {
			t.Errorf("entry %d wrongly flagged coldest", i)
		}
	}
}

func TestEntriesSuppressesFlagsBelowTwo(t *testing.T) {
	set := NewSet(newStub(snapshot(1, "Solo", 30)))
	if err := set.Add(context.Background(), "Solo"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries := set.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Hottest || entries[0].Coldest {
		t.Errorf("flags set on a single-entry set")
	}
}

func TestEntriesPreserveInsertionOrder(t *testing.T) {
	names := []string{"B", "A", "C"}
	set := NewSet(newStub(
		snapshot(2, "B", 20),
		snapshot(1, "A", 10),
		snapshot(3, "C", 30),
	))
	ctx := context.Background()
	for _, name := range names {
		set.Add(ctx, name)
	}

	entries := set.Entries()
	for i, name := range names {
		if entries[i].Snapshot.Name != name {
			t.Errorf("entry %d = %s, want %s", i, entries[i].Snapshot.Name, name)
		}
	}
}
