package stagenote

import "context"

// OCR extracts text from an image URL. The result is best-effort and may
// be empty; image download and preprocessing are the implementation's
// concern. Extraction treats empty OCR text as an absent input source.
type OCR interface {
	Recognize(ctx context.Context, imageURL string) (string, error)
}
