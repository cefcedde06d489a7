package catalog

import (
	"sync"

	"go-registry-console/internal/models"
)

// Store holds the in-memory, ordered device list for the brand a tab is
// scoped to. The list is replaced wholesale on every load or mutation;
// it is never patched in place. A mutex guards against overlapping
// requests from the same tab.
type Store struct {
	mu      sync.RWMutex
	brand   string
	devices []models.Device
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a freshly fetched list for the given brand. A stale
// in-flight response simply overwrites an earlier one: last write wins.
func (s *Store) Replace(brand string, devices []models.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brand = brand
	s.devices = devices
}

// Clear drops the list, e.g. when the brand scope is removed.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brand = ""
	s.devices = nil
}

// Brand returns the brand the current list belongs to.
func (s *Store) Brand() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brand
}

// Devices returns a copy of the current list in original order.
func (s *Store) Devices() []models.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// Len returns the number of devices currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices)
}

// Filtered applies the filter pair to the current list.
func (s *Store) Filtered(filter models.FilterState) []models.Device {
	return Filter(s.Devices(), filter.Category, filter.Text)
}
