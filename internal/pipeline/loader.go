package pipeline

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/source"
)

// LoadResult holds the output of the ledger loading pipeline.
type LoadResult struct {
	Ledger model.Ledger
	Tags   map[string]string
	Files  []source.DiscoveredFile // every discovered file, all kinds

	TotalFiles  int // transaction files considered
	ParsedFiles int
	SkippedRows int
	Errors      []error // per-file failures (schema or I/O), reported not fatal
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers every data file under dataDir, parses all transaction
// tables on a bounded worker pool, and merges them into one ledger sorted
// by date. Budget and mortgage tables are discovered but left to their
// consumers, so a bad budget file only ever fails the budget view.
func Load(dataDir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &LoadResult{Files: files}
	if len(files) == 0 {
		return result, nil
	}

	result.Tags = loadTags(files)

	txFiles := source.FilterKind(files, source.KindTransactions)
	result.TotalFiles = len(txFiles)
	if len(txFiles) == 0 {
		return result, nil
	}

	for _, pr := range parsePool(txFiles, result.Tags, 0, len(txFiles), progressFn) {
		if pr.Err != nil {
			result.Errors = append(result.Errors, pr.Err)
			continue
		}
		result.ParsedFiles++
		result.SkippedRows += pr.Skipped
		result.Ledger.Records = append(result.Ledger.Records, pr.Records...)
	}

	sortLedger(&result.Ledger)
	return result, nil
}

// parsePool parses transaction files on a bounded worker pool. done and
// total offset the progress callback when some files were served from
// cache.
func parsePool(files []source.DiscoveredFile, tags map[string]string, done, total int, progressFn ProgressFunc) []source.ParseResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseTransactions(files[idx].Path, tags)
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n)+done, total)
				}
			}
		}()
	}

	wg.Wait()
	return results
}

// sortLedger orders records by date, breaking same-day ties on the record
// fields themselves so cached and fresh loads produce the same sequence.
func sortLedger(ledger *model.Ledger) {
	sort.SliceStable(ledger.Records, func(i, j int) bool {
		a, b := ledger.Records[i], ledger.Records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Counterparty != b.Counterparty {
			return a.Counterparty < b.Counterparty
		}
		return a.Amount.LessThan(b.Amount)
	})
}

// loadTags reads the first discovered tag table, best-effort.
func loadTags(files []source.DiscoveredFile) map[string]string {
	tagFiles := source.FilterKind(files, source.KindTags)
	if len(tagFiles) == 0 {
		return nil
	}
	return source.ParseTagTable(tagFiles[0].Path)
}

// applyTags refreshes the tag join on every record so edits to the tag
// table take effect even for cache-served records.
func applyTags(ledger *model.Ledger, tags map[string]string) {
	if len(tags) == 0 {
		return
	}
	for i := range ledger.Records {
		if tag, ok := tags[ledger.Records[i].Counterparty]; ok {
			ledger.Records[i].Tag = tag
		}
	}
}
