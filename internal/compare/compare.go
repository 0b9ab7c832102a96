// Package compare maintains the bounded, user-curated list of city
// snapshots shown side by side.
package compare

import (
	"context"
	"errors"
	"sync"

	"github.com/Mani-Chandra65/Weather-App/internal/forecast"
	"github.com/Mani-Chandra65/Weather-App/internal/owm"
)

// MaxCities is the comparison capacity.
const MaxCities = 5

var (
	// ErrFull is returned when the set already holds MaxCities entries.
	ErrFull = errors.New("Maximum 5 cities allowed for comparison")
	// ErrDuplicate is returned when the fetched city is already present.
	ErrDuplicate = errors.New("City already in comparison")
)

// Fetcher resolves a city name to its current conditions. Both the facade
// service and the fetch client satisfy it.
type Fetcher interface {
	CurrentByCity(ctx context.Context, city string) (owm.CurrentWeather, error)
}

// Entry is one comparison slot: the snapshot, the temperature display
// color, and extreme-temperature flags. When several cities tie for an
// extreme, all of them are flagged.
type Entry struct {
	Snapshot owm.CurrentWeather `json:"snapshot"`
	Color    string             `json:"color"`
	Hottest  bool               `json:"hottest"`
	Coldest  bool               `json:"coldest"`
}

// Set is an order-preserving collection of snapshots keyed by the
// provider-assigned location ID. It lives for one UI session and holds no
// durable state.
type Set struct {
	fetcher Fetcher

	mu        sync.Mutex
	snapshots []owm.CurrentWeather
}

// NewSet creates an empty comparison set backed by the given fetcher.
func NewSet(fetcher Fetcher) *Set {
	return &Set{fetcher: fetcher}
}

// Add fetches the named city and appends its snapshot. It rejects overflow
// before fetching, and duplicates (same location ID) after; on any error
// the set is unchanged.
func (s *Set) Add(ctx context.Context, city string) error {
	s.mu.Lock()
	if len(s.snapshots) >= MaxCities {
		s.mu.Unlock()
		return ErrFull
	}
	s.mu.Unlock()

	snapshot, err := s.fetcher.CurrentByCity(ctx, city)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check capacity: a concurrent Add may have raced us here.
	if len(s.snapshots) >= MaxCities {
		return ErrFull
	}
	for _, existing := range s.snapshots {
		if existing.ID == snapshot.ID {
			return ErrDuplicate
		}
	}

	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

// Remove deletes the entry with the given location ID; absent IDs are a
// no-op.
func (s *Set) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, snap := range s.snapshots {
		if snap.ID == id {
			s.snapshots = append(s.snapshots[:i], s.snapshots[i+1:]...)
			return
		}
	}
}

// Len reports the number of cities in the set.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

// Entries returns the snapshots in insertion order with hottest/coldest
// flags set. Flagging is suppressed entirely when fewer than two cities are
// present.
func (s *Set) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, len(s.snapshots))
	for i, snap := range s.snapshots {
		entries[i] = Entry{
			Snapshot: snap,
			Color:    forecast.TemperatureColor(snap.Main.Temp),
		}
	}

	if len(s.snapshots) < 2 {
		return entries
	}

	highest := s.snapshots[0].Main.Temp
	lowest := s.snapshots[0].Main.Temp
	for _, snap := range s.snapshots[1:] {
		if snap.Main.Temp > highest {
			highest = snap.Main.Temp
		}
		if snap.Main.Temp < lowest {
			lowest = snap.Main.Temp
		}
	}

	for i := range entries {
		temp := entries[i].Snapshot.Main.Temp
		entries[i].Hottest = temp == highest
		entries[i].Coldest = temp == lowest
	}
	return entries
}
