// Package compositor turns a remote raster image into a single full-bleed
// PDF page, used for greeting-card fronts.
package compositor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"github.com/biglittlethings/paperwork/internal/compose"
)

var ErrComposition = errors.New("image composition failed")

// jpegQuality bounds the size of the embedded page regardless of how large
// the source upload was.
const jpegQuality = 80

// maxImageBytes caps the fetched body; card scans should never come close.
const maxImageBytes = 32 << 20

type Config struct {
	FetchTimeout time.Duration
}

// Compositor fetches, normalizes, and embeds remote images.
type Compositor struct {
	client *http.Client
}

func New(cfg Config) *Compositor {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Compositor{client: &http.Client{Timeout: timeout}}
}

// ComposeFullPage fetches the image at imageURL, corrects its orientation
// from embedded EXIF metadata, re-encodes it as JPEG, and places it as one
// margin-less A4 page in the given orientation. Fetch and decode failures
// surface as ErrComposition with the cause attached; there is no retry.
func (c *Compositor) ComposeFullPage(ctx context.Context, imageURL string, orientation compose.Orientation) ([]byte, error) {
	data, err := c.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrComposition, imageURL, err)
	}

	var jpegBuf bytes.Buffer
	if err := imaging.Encode(&jpegBuf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: re-encode: %v", ErrComposition, err)
	}

	orientationStr := "P"
	if orientation == compose.Landscape {
		orientationStr = "L"
	}
	pdf := fpdf.New(orientationStr, "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	imgOpts := fpdf.ImageOptions{ImageType: "JPEG"}
	pdf.RegisterImageOptionsReader("front", imgOpts, &jpegBuf)
	pdf.ImageOptions("front", 0, 0, pageW, pageH, false, imgOpts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("%w: write pdf: %v", ErrComposition, err)
	}
	return out.Bytes(), nil
}

func (c *Compositor) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrComposition, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrComposition, imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: status %d", ErrComposition, imageURL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrComposition, err)
	}
	return data, nil
}
