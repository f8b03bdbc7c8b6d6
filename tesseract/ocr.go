// Package tesseract implements OCR over poster images by shelling out to
// the tesseract CLI. Posters carry dates, venues, and program listings that
// never make it into the page markup, so OCR text is a first-class
// extraction input.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fwojciec/stagenote"
)

// DefaultLanguages covers Korean performance posters with mixed Latin
// program text.
const DefaultLanguages = "kor+eng"

// maxWidth bounds the image sent to tesseract; beyond this it gets slower
// without getting more accurate.
const maxWidth = 2000

// Ensure OCR implements stagenote.OCR at compile time.
var _ stagenote.OCR = (*OCR)(nil)

// OCR downloads an image, preprocesses it for recognition, and runs the
// tesseract CLI over it. The tesseract binary and its language data must be
// installed on the host.
type OCR struct {
	client    *http.Client
	binary    string
	languages string
}

// OCROption configures an OCR.
type OCROption func(*OCR)

// WithLanguages sets the tesseract language spec, e.g. "kor+eng".
func WithLanguages(langs string) OCROption {
	return func(o *OCR) {
		o.languages = langs
	}
}

// WithBinary sets the tesseract executable path. Defaults to "tesseract"
// resolved from PATH.
func WithBinary(path string) OCROption {
	return func(o *OCR) {
		o.binary = path
	}
}

// WithHTTPClient sets the client used to download images.
func WithHTTPClient(client *http.Client) OCROption {
	return func(o *OCR) {
		o.client = client
	}
}

// New creates an OCR.
func New(opts ...OCROption) *OCR {
	o := &OCR{
		client:    &http.Client{Timeout: 30 * time.Second},
		binary:    "tesseract",
		languages: DefaultLanguages,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Recognize downloads the image and returns the recognized text. A poster
// that yields no legible text returns an empty string, not an error.
func (o *OCR) Recognize(ctx context.Context, imageURL string) (string, error) {
	img, err := o.download(ctx, imageURL)
	if err != nil {
		return "", err
	}

	img = Preprocess(img)

	tmp, err := os.CreateTemp("", "stagenote-ocr-*.png")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encoding image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	return o.run(ctx, tmp.Name())
}

// Preprocess prepares a poster image for recognition: downscale oversized
// images, greyscale, and sharpen. Small images are left at their native
// resolution; enlarging blurs the glyph edges tesseract keys on. Stylized
// poster typography needs the contrast boost more than photos do.
func Preprocess(img image.Image) image.Image {
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	img = imaging.Grayscale(img)
	img = imaging.Sharpen(img, 1.0)
	img = imaging.AdjustContrast(img, 20)
	return img
}

func (o *OCR) download(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, stagenote.Errorf(stagenote.EUNAVAILABLE, "downloading image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, stagenote.Errorf(stagenote.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, imageURL)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// run invokes tesseract with stdout output and returns the recognized text.
func (o *OCR) run(ctx context.Context, imagePath string) (string, error) {
	// "stdout" as the output base makes tesseract write text to stdout
	// instead of a file.
	cmd := exec.CommandContext(ctx, o.binary, imagePath, "stdout", "-l", o.languages)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("tesseract %s: %w: %s", filepath.Base(imagePath), err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(out.String()), nil
}
