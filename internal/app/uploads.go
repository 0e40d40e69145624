package app

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
	"github.com/toniju98/AirBnbAnalyzer/internal/loader"
)

// UploadFile is one user-submitted CSV, fully buffered.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadService ingests booking exports: files parse concurrently
// (bounded by workers), then merge into one deduplicated dataset
// registered under a fresh id.
type UploadService struct {
	store   domain.UploadStore
	workers int
}

func NewUploadService(store domain.UploadStore, workers int) *UploadService {
	if workers <= 0 {
		workers = 4
	}
	return &UploadService{store: store, workers: workers}
}

func (s *UploadService) Ingest(ctx context.Context, files []UploadFile) (domain.BookingDataset, error) {
	if len(files) == 0 {
		return domain.BookingDataset{}, fmt.Errorf("no files supplied")
	}

	parsed := make([]loader.BookingFile, len(files))
	errs := make([]error, len(files))
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup

	for i, f := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			return domain.BookingDataset{}, err
		}
		wg.Add(1)
		go func(i int, f UploadFile) {
			defer wg.Done()
			defer sem.Release(1)
			parsed[i], errs[i] = loader.ParseBookingFile(f.Name, bytes.NewReader(f.Data))
		}(i, f)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return domain.BookingDataset{}, fmt.Errorf("ingest %s: %w", files[i].Name, err)
		}
	}

	ds := loader.MergeBookingFiles(parsed)
	ds.ID = uuid.NewString()
	s.store.Put(ds)

	log.Info().
		Str("id", ds.ID).
		Int("files", len(files)).
		Int("rows", len(ds.Records)).
		Strs("date_columns", ds.DateColumns).
		Strs("price_columns", ds.PriceColumns).
		Msg("booking upload ingested")
	return ds, nil
}
