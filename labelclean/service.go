package labelclean

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// batchSize is the number of rows handled by one goroutine in CleanAll.
const batchSize = 256

// Service fingerprints rows and resolves them against a canonical table.
type Service struct {
	table   *CanonicalTable
	workers int
	logger  *slog.Logger
}

// NewService constructs a service. A nil table means DefaultCanonicalTable and
// a nil logger disables logging.
func NewService(table *CanonicalTable, cfg Config, logger *slog.Logger) *Service {
	cfg.ApplyDefaults()
	if table == nil {
		table = DefaultCanonicalTable()
	}
	return &Service{
		table:   table,
		workers: cfg.Workers,
		logger:  logger,
	}
}

// Table returns the canonical table used for lookups.
func (s *Service) Table() *CanonicalTable {
	return s.table
}

// Clean fingerprints text and resolves the key.
func (s *Service) Clean(text string) ResultRecord {
	key := Fingerprint(text)
	value, ok := s.table.Resolve(key)
	return ResultRecord{Key: key, Cleaned: value, Resolved: ok}
}

// CleanAll cleans every record and returns results in input order. Rows are
// processed concurrently in batches; progress, when non-nil, is called after
// each batch and may be invoked from several goroutines at once. The only
// error is cancellation of ctx.
func (s *Service) CleanAll(ctx context.Context, records []RawRecord, progress func(done, total int)) ([]ResultRecord, error) {
	total := len(records)
	results := make([]ResultRecord, total)
	if total == 0 {
		return results, nil
	}
	runID := uuid.NewString()
	s.logInfo("cleaning started", "run", runID, "records", total, "workers", s.workers)
	start := time.Now()

	var done, misses atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for lo := 0; lo < total; lo += batchSize {
		lo := lo
		hi := min(lo+batchSize, total)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				results[i] = s.Clean(records[i].Text)
				if !results[i].Resolved {
					misses.Add(1)
					s.logDebug("no canonical value", "run", runID, "row", records[i].Index, "key", results[i].Key)
				}
			}
			n := done.Add(int64(hi - lo))
			if progress != nil {
				progress(int(n), total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logInfo("cleaning complete",
		"run", runID,
		"records", total,
		"resolved", total-int(misses.Load()),
		"unresolved", misses.Load(),
		"elapsed", time.Since(start),
	)
	return results, nil
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Service) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
