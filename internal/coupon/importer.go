package coupon

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Importer loads coupon definition files and upserts them into a Store.
type Importer struct {
	loader Loader
	store  Store
	logger zerolog.Logger
}

// NewImporter creates a new coupon importer.
func NewImporter(loader Loader, store Store, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "coupon-importer").Logger(),
	}
}

// Import loads all files concurrently, merges them in the given order so that later
// files override earlier ones, and upserts the result. It returns the number of coupons
// written. A file that fails to load aborts the import before anything is written.
func (i *Importer) Import(ctx context.Context, filePaths []string) (int, error) {
	if len(filePaths) == 0 {
		return 0, nil
	}

	i.logger.Info().Int("file_count", len(filePaths)).Msg("importing coupon files")

	type loadResult struct {
		index int
		set   Set
		err   error
	}

	resultChan := make(chan loadResult, len(filePaths))
	var wg sync.WaitGroup

	for idx, filePath := range filePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := i.loader.Load(ctx, path)
			resultChan <- loadResult{index: index, set: set, err: err}
		}(idx, filePath)
	}

	wg.Wait()
	close(resultChan)

	sets := make([]Set, len(filePaths))
	for result := range resultChan {
		if result.err != nil {
			i.logger.Error().
				Err(result.err).
				Str("file", filePaths[result.index]).
				Msg("failed to load coupon file")
			return 0, fmt.Errorf("failed to load coupon file %s: %w", filePaths[result.index], result.err)
		}
		sets[result.index] = result.set
	}

	merged := Merge(sets...)
	written := 0
	for _, c := range merged.All() {
		if err := i.store.Upsert(ctx, &c); err != nil {
			i.logger.Error().Err(err).Str("coupon_code", c.Code).Msg("failed to upsert coupon")
			return written, fmt.Errorf("failed to upsert coupon %s: %w", c.Code, err)
		}
		written++
	}

	i.logger.Info().Int("coupons_written", written).Msg("coupon import completed")

	return written, nil
}
