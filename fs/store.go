// Package fs provides file-based storage for performance records: one JSON
// file per record in a flat data directory. The layout is compatible with
// data directories written by earlier versions of the scraper, where the
// record ID is the file name without extension.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/stagenote"
)

// Ensure Store implements stagenote.PerformanceService at compile time.
var _ stagenote.PerformanceService = (*Store)(nil)

// Store persists performance records as pretty-printed JSON files named
// performance_<unix-millis>.json. Writes go to a temporary file first and
// are renamed into place, so readers never observe a partial record.
//
// Store is safe for concurrent use.
type Store struct {
	dir string

	// mu serializes ID assignment; two records scraped in the same
	// millisecond would otherwise collide on the file name.
	mu     sync.Mutex
	lastID int64
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// CreatePerformance stores the record and assigns its ID.
func (s *Store) CreatePerformance(ctx context.Context, rec *stagenote.PerformanceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	s.mu.Unlock()

	rec.ID = fmt.Sprintf("performance_%d", id)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".performance-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path(rec.ID))
}

// FindPerformanceByID retrieves a record by ID.
func (s *Store) FindPerformanceByID(ctx context.Context, id string) (*stagenote.PerformanceRecord, error) {
	if !validID(id) {
		return nil, stagenote.Errorf(stagenote.ENOTFOUND, "performance not found")
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, stagenote.Errorf(stagenote.ENOTFOUND, "performance not found")
		}
		return nil, err
	}

	var rec stagenote.PerformanceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", id, err)
	}
	rec.ID = id
	return &rec, nil
}

// FindPerformances retrieves stored records matching the filter, sorted by
// ScrapedAt descending.
func (s *Store) FindPerformances(ctx context.Context, filter stagenote.PerformanceFilter) ([]*stagenote.PerformanceRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var recs []*stagenote.PerformanceRecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}

		rec, err := s.FindPerformanceByID(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			// A file deleted mid-listing is not an error.
			if stagenote.ErrorCode(err) == stagenote.ENOTFOUND {
				continue
			}
			return nil, err
		}

		if filter.SourceURL != nil && rec.SourceURL != *filter.SourceURL {
			continue
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].ScrapedAt.After(recs[j].ScrapedAt)
	})

	return applyLimitOffset(recs, filter.Offset, filter.Limit), nil
}

// DeletePerformance permanently removes a record.
func (s *Store) DeletePerformance(ctx context.Context, id string) error {
	if !validID(id) {
		return stagenote.Errorf(stagenote.ENOTFOUND, "performance not found")
	}
	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return stagenote.Errorf(stagenote.ENOTFOUND, "performance not found")
		}
		return err
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// validID rejects IDs that could escape the data directory.
func validID(id string) bool {
	return id != "" && id == filepath.Base(id) && !strings.HasPrefix(id, ".")
}

func applyLimitOffset(recs []*stagenote.PerformanceRecord, offset, limit int) []*stagenote.PerformanceRecord {
	if offset > 0 {
		if offset >= len(recs) {
			return nil
		}
		recs = recs[offset:]
	}
	if limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}
	return recs
}
