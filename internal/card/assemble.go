package card

import (
	"context"
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/biglittlethings/paperwork/internal/barcode"
	"github.com/biglittlethings/paperwork/internal/compose"
	"github.com/biglittlethings/paperwork/internal/mail"
	"github.com/biglittlethings/paperwork/internal/render"
)

// backScale compensates for the card layout being authored at a slightly
// smaller viewport than Chromium's A4 default.
const backScale = 1.29

// placeholderPattern matches single-word [tokens] in the card body.
var placeholderPattern = regexp.MustCompile(`\[(\w+)\]`)

// barcodeToken marks where the barcode SVG is inlined when the card body
// reserves a spot for it.
const barcodeToken = "[barcode]"

// HTMLRenderer renders the back surface.
type HTMLRenderer interface {
	RenderPDF(ctx context.Context, html string, opts render.Options) ([]byte, error)
}

// FrontCompositor produces the full-bleed front page from a remote image.
type FrontCompositor interface {
	ComposeFullPage(ctx context.Context, imageURL string, orientation compose.Orientation) ([]byte, error)
}

// Assembler produces card surfaces per the export-surface selector and
// packages them for email or download.
type Assembler struct {
	renderer   HTMLRenderer
	compositor FrontCompositor
	dispatcher mail.Dispatcher
	logger     zerolog.Logger
}

func NewAssembler(renderer HTMLRenderer, compositor FrontCompositor, dispatcher mail.Dispatcher, logger zerolog.Logger) *Assembler {
	return &Assembler{
		renderer:   renderer,
		compositor: compositor,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Print composes the selected surfaces and emails them as attachments.
func (a *Assembler) Print(ctx context.Context, req PrintRequest) error {
	sides := req.ExportSides
	if sides == "" {
		sides = SideBoth
	}

	var artifacts []compose.Artifact

	if sides.wantsFront() {
		front, err := a.frontSurface(ctx, req.ImageURL, req.FrontOrientation, req.FrontFilename)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, front)
	}
	if sides.wantsBack() {
		back, err := a.backSurface(ctx, req.HTMLText, req.Placeholders, req.BarcodeValue, req.BarcodeFormat, req.BackOrientation, req.BackFilename)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, back)
	}

	env := req.Email
	env.DeduplicateAgainstTo()

	attachments := make([]mail.Attachment, 0, len(artifacts))
	for _, artifact := range artifacts {
		attachments = append(attachments, mail.Attachment{
			Filename:    artifact.Name,
			Content:     base64.StdEncoding.EncodeToString(artifact.Data),
			Type:        "application/pdf",
			Disposition: "attachment",
		})
	}
	return a.dispatcher.Send(ctx, env, attachments)
}

// Download composes exactly one surface and returns it as a named artifact.
// The side defaults to back, matching the card editor's preview flow.
func (a *Assembler) Download(ctx context.Context, req DownloadRequest) (compose.Artifact, error) {
	side := req.ExportSide
	if side == "" {
		side = SideBack
	}
	if side == SideFront {
		return a.frontSurface(ctx, req.ImageURL, req.FrontOrientation, req.FrontFilename)
	}
	return a.backSurface(ctx, req.HTMLText, req.Placeholders, req.BarcodeValue, req.BarcodeFormat, req.BackOrientation, req.BackFilename)
}

func (a *Assembler) frontSurface(ctx context.Context, imageURL, orientation, filename string) (compose.Artifact, error) {
	data, err := a.compositor.ComposeFullPage(ctx, imageURL, compose.ParseOrientation(orientation))
	if err != nil {
		return compose.Artifact{}, err
	}
	artifact := compose.Artifact{Name: orDefault(filename, defaultFrontFilename), Data: data}
	if err := compose.CheckSize(artifact); err != nil {
		return compose.Artifact{}, err
	}
	return artifact, nil
}

func (a *Assembler) backSurface(ctx context.Context, htmlText string, placeholders map[string]string, barcodeValue, barcodeFormat, orientation, filename string) (compose.Artifact, error) {
	html := substitutePlaceholders(htmlText, placeholders)

	if barcodeValue != "" {
		markup, err := barcode.Render(barcodeValue, barcode.Format(barcodeFormat))
		if err != nil {
			// Degrade to no barcode: an encode failure must never abort
			// card composition.
			a.logger.Warn().Err(err).Str("format", barcodeFormat).Msg("barcode render failed, card continues without it")
		} else {
			html = inlineBarcode(html, markup)
		}
	}

	data, err := a.renderer.RenderPDF(ctx, html, render.Options{
		Orientation: compose.ParseOrientation(orientation),
		Scale:       backScale,
	})
	if err != nil {
		return compose.Artifact{}, err
	}
	artifact := compose.Artifact{Name: orDefault(filename, defaultBackFilename), Data: data}
	if err := compose.CheckSize(artifact); err != nil {
		return compose.Artifact{}, err
	}
	return artifact, nil
}

// substitutePlaceholders fills [token] slots from the recipient-name map.
// Tokens without a mapping stay visible in the output, the same convention
// the document templates follow.
func substitutePlaceholders(htmlText string, placeholders map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(htmlText, func(token string) string {
		if value, ok := placeholders[token[1:len(token)-1]]; ok {
			return value
		}
		return token
	})
}

// inlineBarcode replaces the reserved [barcode] slot, or appends the markup
// to the end of the body when the card layout reserves none.
func inlineBarcode(html, markup string) string {
	if strings.Contains(html, barcodeToken) {
		return strings.ReplaceAll(html, barcodeToken, markup)
	}
	if idx := strings.LastIndex(html, "</body>"); idx >= 0 {
		return html[:idx] + markup + html[idx:]
	}
	return html + markup
}
