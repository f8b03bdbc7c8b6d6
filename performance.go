package stagenote

import (
	"context"
	"time"
)

// Caps on extracted fields. Extraction is best-effort over unreliable
// sources, so every multi-valued or free-text field is bounded.
const (
	MaxPerformers     = 20
	MaxProgramItems   = 30
	MaxPriceTokens    = 10
	MaxDescriptionLen = 1000
	MaxRawTextLen     = 5000
	MaxPosterImages   = 3
)

// PerformanceRecord is the normalized result of extracting one performance
// page. Every field except SourceURL and ScrapedAt may be empty; a miss is
// a valid outcome, not an error. The JSON field names are the wire contract
// shared with previously stored records and must not change.
type PerformanceRecord struct {
	// ID is assigned by the storage layer, not by extraction.
	ID string `json:"id,omitempty"`

	SourceURL string    `json:"sourceUrl"`
	ScrapedAt time.Time `json:"scrapedAt"`

	Title string `json:"title"`

	// Date is free-form normalized date/time text, always "date time" order.
	Date  string `json:"date"`
	Venue string `json:"venue"`

	// Performers holds bare names or "name (role)" / "name - role"
	// annotations. No two entries share a name substring.
	Performers []string `json:"performers"`

	// Program holds work/piece descriptions. No two entries share a
	// leading prefix within the dedup window.
	Program []string `json:"program"`

	Description string `json:"description"`

	// Price is a single comma-joined string of distinct price tokens.
	Price string `json:"price"`

	PosterImage  string `json:"posterImage"`
	OCRExtracted bool   `json:"ocrExtracted"`

	// RawText is the whitespace-collapsed page text plus OCR text,
	// retained for debugging and re-extraction, not for display.
	RawText string `json:"rawText"`
}

// Validate returns an error if the record violates its invariants.
func (r *PerformanceRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "performance source URL required")
	}
	if len(r.Performers) > MaxPerformers {
		return Errorf(EINVALID, "performers exceed cap of %d", MaxPerformers)
	}
	if len(r.Program) > MaxProgramItems {
		return Errorf(EINVALID, "program items exceed cap of %d", MaxProgramItems)
	}
	return nil
}

// PerformanceService manages stored performance records. A later scrape of
// the same URL creates an independent new record; the service owns identity.
type PerformanceService interface {
	// CreatePerformance stores a new record and assigns its ID.
	CreatePerformance(ctx context.Context, rec *PerformanceRecord) error

	// FindPerformanceByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindPerformanceByID(ctx context.Context, id string) (*PerformanceRecord, error)

	// FindPerformances retrieves records matching the filter,
	// sorted by ScrapedAt descending.
	FindPerformances(ctx context.Context, filter PerformanceFilter) ([]*PerformanceRecord, error)

	// DeletePerformance permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeletePerformance(ctx context.Context, id string) error
}

// PerformanceFilter represents a filter for FindPerformances.
type PerformanceFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
