// Package memory keeps uploaded booking datasets for the life of the
// process. Uploads are session artifacts, not durable data, so there
// is no backing store.
package memory

import (
	"sync"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

type UploadStore struct {
	mu   sync.RWMutex
	sets map[string]domain.BookingDataset
}

func NewUploadStore() *UploadStore {
	return &UploadStore{sets: map[string]domain.BookingDataset{}}
}

func (s *UploadStore) Put(ds domain.BookingDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[ds.ID] = ds
}

func (s *UploadStore) Get(id string) (domain.BookingDataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.sets[id]
	return ds, ok
}
