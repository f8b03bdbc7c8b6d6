package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/stagenote"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ stagenote.PerformanceService = (*PerformanceService)(nil)

// PerformanceService implements stagenote.PerformanceService using SQLite.
type PerformanceService struct {
	db *DB
}

// NewPerformanceService creates a new PerformanceService.
func NewPerformanceService(db *DB) *PerformanceService {
	return &PerformanceService{db: db}
}

// hashRawText computes xxHash of the raw text and returns a hex string.
// The hash lets re-scrape tooling detect unchanged pages without comparing
// the full text.
func hashRawText(text string) string {
	h := xxhash.Sum64String(text)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreatePerformance stores a new record and assigns its ID.
func (s *PerformanceService) CreatePerformance(ctx context.Context, rec *stagenote.PerformanceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.ScrapedAt.IsZero() {
		rec.ScrapedAt = time.Now().UTC()
	}

	performers, err := json.Marshal(emptyIfNil(rec.Performers))
	if err != nil {
		return err
	}
	program, err := json.Marshal(emptyIfNil(rec.Program))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO performances (id, source_url, scraped_at, title, date, venue, performers, program, description, price, poster_image, ocr_extracted, raw_text, raw_text_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceURL, rec.ScrapedAt.Format(time.RFC3339Nano), rec.Title, rec.Date, rec.Venue,
		string(performers), string(program), rec.Description, rec.Price, rec.PosterImage,
		rec.OCRExtracted, rec.RawText, hashRawText(rec.RawText))

	return err
}

// FindPerformanceByID retrieves a record by ID.
func (s *PerformanceService) FindPerformanceByID(ctx context.Context, id string) (*stagenote.PerformanceRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, scraped_at, title, date, venue, performers, program, description, price, poster_image, ocr_extracted, raw_text
		FROM performances
		WHERE id = ?
	`, id)

	rec, err := scanPerformance(row.Scan)
	if err == sql.ErrNoRows {
		return nil, stagenote.Errorf(stagenote.ENOTFOUND, "performance not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindPerformances retrieves records matching the filter, sorted by
// scraped_at descending.
func (s *PerformanceService) FindPerformances(ctx context.Context, filter stagenote.PerformanceFilter) ([]*stagenote.PerformanceRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, scraped_at, title, date, venue, performers, program, description, price, poster_image, ocr_extracted, raw_text FROM performances WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY scraped_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*stagenote.PerformanceRecord
	for rows.Next() {
		rec, err := scanPerformance(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeletePerformance permanently removes a record.
func (s *PerformanceService) DeletePerformance(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM performances WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return stagenote.Errorf(stagenote.ENOTFOUND, "performance not found")
	}
	return nil
}

func scanPerformance(scan func(dest ...any) error) (*stagenote.PerformanceRecord, error) {
	var rec stagenote.PerformanceRecord
	var scrapedAt, performers, program string

	err := scan(&rec.ID, &rec.SourceURL, &scrapedAt, &rec.Title, &rec.Date, &rec.Venue,
		&performers, &program, &rec.Description, &rec.Price, &rec.PosterImage,
		&rec.OCRExtracted, &rec.RawText)
	if err != nil {
		return nil, err
	}

	rec.ScrapedAt, err = time.Parse(time.RFC3339Nano, scrapedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scraped_at: %w", err)
	}
	if err := json.Unmarshal([]byte(performers), &rec.Performers); err != nil {
		return nil, fmt.Errorf("failed to parse performers: %w", err)
	}
	if err := json.Unmarshal([]byte(program), &rec.Program); err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}

	return &rec, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
