// Package render drives headless Chromium to convert an HTML string into a
// paginated A4 PDF. Every render gets a fresh browser context that is torn
// down unconditionally, so one request's failure can never corrupt
// another's rendering state.
package render

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/biglittlethings/paperwork/internal/compose"
)

var ErrRender = errors.New("pdf rendering failed")

// A4 paper dimensions in inches. Chromium swaps them for landscape.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// Config holds the renderer settings injected at construction.
type Config struct {
	// ChromiumPath overrides the browser binary; empty means lookup.
	ChromiumPath string
	// Timeout bounds a single render including the font-ready wait.
	Timeout time.Duration
	// MaxConcurrent caps simultaneous browser contexts.
	MaxConcurrent int
}

// Renderer converts HTML to PDF byte buffers.
type Renderer struct {
	cfg Config
	sem chan struct{}
}

// Options control a single render.
type Options struct {
	Orientation   compose.Orientation
	Scale         float64
	StylesheetURL string
}

func New(cfg Config) *Renderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 2
	}
	return &Renderer{
		cfg: cfg,
		sem: make(chan struct{}, cfg.MaxConcurrent),
	}
}

// RenderPDF loads html into a fresh browser context, waits until the DOM is
// parsed and all web fonts have finished loading, emulates screen media, and
// prints to A4 with background graphics. Capturing before fonts resolve
// produces wrong glyph metrics, so the font wait is not optional.
func (r *Renderer) RenderPDF(ctx context.Context, html string, opts Options) ([]byte, error) {
	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: waiting for render slot: %v", ErrRender, ctx.Err())
	}

	if opts.StylesheetURL != "" {
		html = fmt.Sprintf("<link rel=%q href=%q>", "stylesheet", opts.StylesheetURL) + html
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.cfg.ChromiumPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.cfg.ChromiumPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, r.cfg.Timeout)
	defer cancelTimeout()

	var pdfBuf []byte
	dataURL := "data:text/html," + url.PathEscape(html)
	err := chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetEmulatedMedia().WithMedia("screen").Do(ctx)
		}),
		waitFontsReady(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(opts.Orientation == compose.Landscape).
				WithScale(scale).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				Do(ctx)
			if perr == nil {
				pdfBuf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return pdfBuf, nil
}

// waitFontsReady blocks until document.fonts.ready resolves.
func waitFontsReady() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var status string
		err := chromedp.Evaluate(
			`document.fonts.ready.then(set => set.status)`,
			&status,
			func(p *cdpruntime.EvaluateParams) *cdpruntime.EvaluateParams {
				return p.WithAwaitPromise(true)
			},
		).Do(ctx)
		if err != nil {
			return fmt.Errorf("font wait: %w", err)
		}
		return nil
	})
}
