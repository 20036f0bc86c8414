package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fundsight/fundsight/internal/source"
	"github.com/fundsight/fundsight/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache discovers data files, diffs transaction tables against the
// cache by mtime and size, parses only changed files, and serves the rest
// from sqlite. A corrupted cache falls back to a full re-parse rather than
// surfacing an error.
func LoadWithCache(dataDir string, cache *store.Cache, progressFn ProgressFunc) (*CachedLoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &CachedLoadResult{LoadResult: LoadResult{Files: files}}
	if len(files) == 0 {
		return result, nil
	}

	result.Tags = loadTags(files)

	txFiles := source.FilterKind(files, source.KindTransactions)
	result.TotalFiles = len(txFiles)
	if len(txFiles) == 0 {
		return result, nil
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	var toReparse []source.DiscoveredFile
	var unchanged []string
	for _, f := range txFiles {
		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == f.ModTime.UnixNano() && cached.SizeBytes == f.Size {
			unchanged = append(unchanged, f.Path)
		} else {
			toReparse = append(toReparse, f)
		}
	}
	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	if len(unchanged) > 0 {
		records, skipped, err := cache.LoadRecords(unchanged)
		if err != nil {
			toReparse = txFiles
			result.CacheHits = 0
			result.Reparsed = len(txFiles)
		} else {
			result.ParsedFiles += len(unchanged)
			result.SkippedRows += skipped
			result.Ledger.Records = append(result.Ledger.Records, records...)
		}
	}

	if len(toReparse) > 0 {
		for i, pr := range parsePool(toReparse, result.Tags, result.CacheHits, result.TotalFiles, progressFn) {
			if pr.Err != nil {
				result.Errors = append(result.Errors, pr.Err)
				continue
			}
			result.ParsedFiles++
			result.SkippedRows += pr.Skipped
			result.Ledger.Records = append(result.Ledger.Records, pr.Records...)

			f := toReparse[i]
			_ = cache.SaveRecords(f.Path, f.ModTime.UnixNano(), f.Size, pr.Skipped, pr.Records)
		}
	}

	applyTags(&result.Ledger, result.Tags)
	sortLedger(&result.Ledger)
	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "fundsight")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "fundsight")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "ledger.db")
}
