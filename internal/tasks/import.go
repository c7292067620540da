package tasks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/versus/internal/services"
	"github.com/desertthunder/versus/internal/shared"
	"golang.org/x/time/rate"
)

// ImportOpts contains configuration for bulk song imports.
type ImportOpts struct {
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Requests per second (default: 5)
}

// SongImportResult is the outcome for a single name.
type SongImportResult struct {
	Name    string
	Success bool
	Error   error
}

// ImportResult summarizes a bulk import. Results follow input order, skipped names excluded.
type ImportResult struct {
	Total   int
	Added   int
	Failed  int
	Skipped int
	Results []SongImportResult
}

type importJob struct {
	index int
	name  string
}

// Importer adds many songs through a rate limited worker pool.
type Importer struct {
	api    services.VotingAPI
	logger *log.Logger
}

// NewImporter creates an Importer backed by api.
func NewImporter(api services.VotingAPI) *Importer {
	return &Importer{api: api, logger: shared.NewLogger(io.Discard)}
}

// SetLogger replaces the importer's logger.
func (i *Importer) SetLogger(l *log.Logger) {
	if l != nil {
		i.logger = l
	}
}

// Import adds every non-blank name. A failed add is recorded and the import continues.
//
// The returned error is non-nil only when the import could not run or ctx was cancelled.
func (i *Importer) Import(ctx context.Context, prog chan<- ProgressUpdate, names []string, opts ImportOpts) (*ImportResult, error) {
	if i.api == nil {
		return nil, fmt.Errorf("%w: voting API not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &ImportResult{Total: len(names)}
	pending := make([]string, 0, len(names))
	for _, n := range names {
		if n = shared.NormalizeName(n); n == "" {
			result.Skipped++
			continue
		}
		pending = append(pending, n)
	}
	result.Results = make([]SongImportResult, len(pending))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan importJob, len(pending))
	for idx, n := range pending {
		jobs <- importJob{index: idx, name: n}
	}
	close(jobs)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	for w := 0; w < opts.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					return
				}

				sendProgress(prog, importingUpdate(job.index+1, len(pending), job.name))
				err := i.api.AddSong(ctx, job.name)

				mu.Lock()
				completed++
				res := SongImportResult{Name: job.name, Success: err == nil, Error: err}
				result.Results[job.index] = res
				if err != nil {
					result.Failed++
					i.logger.Warn("import failed", "name", job.name, "error", err)
					sendProgress(prog, importFailedUpdate(completed, len(pending), job.name, err))
				} else {
					result.Added++
					sendProgress(prog, importCompletedUpdate(completed, len(pending), job.name))
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("import interrupted: %w", err)
	}
	return result, nil
}

// ReadNames reads one song name per line. Blank lines and lines starting with # are ignored.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return names, nil
}
