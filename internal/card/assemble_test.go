package card

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biglittlethings/paperwork/internal/compose"
	"github.com/biglittlethings/paperwork/internal/compositor"
	"github.com/biglittlethings/paperwork/internal/mail"
	"github.com/biglittlethings/paperwork/internal/render"
)

type fakeRenderer struct {
	out   []byte
	err   error
	calls int
	html  string
	opts  render.Options
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html string, opts render.Options) ([]byte, error) {
	f.calls++
	f.html = html
	f.opts = opts
	return f.out, f.err
}

type fakeCompositor struct {
	out         []byte
	err         error
	calls       int
	imageURL    string
	orientation compose.Orientation
}

func (f *fakeCompositor) ComposeFullPage(_ context.Context, imageURL string, orientation compose.Orientation) ([]byte, error) {
	f.calls++
	f.imageURL = imageURL
	f.orientation = orientation
	return f.out, f.err
}

type fakeDispatcher struct {
	err         error
	env         mail.Envelope
	attachments []mail.Attachment
	calls       int
}

func (f *fakeDispatcher) Send(_ context.Context, env mail.Envelope, attachments []mail.Attachment) error {
	f.calls++
	f.env = env
	f.attachments = attachments
	return f.err
}

func pdfBytes(n int) []byte {
	return append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte{'x'}, n-9)...)
}

func testEnvelope() mail.Envelope {
	return mail.Envelope{
		To:      mail.AddressList{"a@x.com"},
		From:    mail.Sender{Email: "cards@biglittlethings.de", Name: "Cards"},
		Subject: "Your card",
		Text:    "Enjoy!",
	}
}

func newTestAssembler(r *fakeRenderer, c *fakeCompositor, d *fakeDispatcher) *Assembler {
	return NewAssembler(r, c, d, zerolog.Nop())
}

func TestPrintFrontOnlySkipsHTMLRenderer(t *testing.T) {
	renderer := &fakeRenderer{out: pdfBytes(4096)}
	comp := &fakeCompositor{out: pdfBytes(4096)}
	dispatcher := &fakeDispatcher{}
	a := newTestAssembler(renderer, comp, dispatcher)

	err := a.Print(context.Background(), PrintRequest{
		ImageURL:      "https://img.example.com/card.jpg",
		FrontFilename: "birthday-front.pdf",
		ExportSides:   SideFront,
		Email:         testEnvelope(),
	})
	require.NoError(t, err)

	// The HTML renderer must never be touched for a front-only request.
	assert.Zero(t, renderer.calls)
	assert.Equal(t, 1, comp.calls)
	require.Len(t, dispatcher.attachments, 1)
	assert.Equal(t, "birthday-front.pdf", dispatcher.attachments[0].Filename)
}

func TestPrintBothProducesOrderedAttachments(t *testing.T) {
	renderer := &fakeRenderer{out: pdfBytes(4096)}
	comp := &fakeCompositor{out: pdfBytes(4096)}
	dispatcher := &fakeDispatcher{}
	a := newTestAssembler(renderer, comp, dispatcher)

	err := a.Print(context.Background(), PrintRequest{
		HTMLText:        "<html><body><p>Hallo [firstname]</p></body></html>",
		ImageURL:        "https://img.example.com/card.jpg",
		Placeholders:    map[string]string{"firstname": "Erika"},
		BackOrientation: "landscape",
		Email:           testEnvelope(),
	})
	require.NoError(t, err)

	require.Len(t, dispatcher.attachments, 2)
	assert.Equal(t, "front.pdf", dispatcher.attachments[0].Filename)
	assert.Equal(t, "back.pdf", dispatcher.attachments[1].Filename)
	assert.Contains(t, renderer.html, "Hallo Erika")
	assert.Equal(t, compose.Landscape, renderer.opts.Orientation)
	assert.Equal(t, 1.29, renderer.opts.Scale)
}

func TestPrintDeduplicatesEnvelope(t *testing.T) {
	renderer := &fakeRenderer{out: pdfBytes(4096)}
	comp := &fakeCompositor{out: pdfBytes(4096)}
	dispatcher := &fakeDispatcher{}
	a := newTestAssembler(renderer, comp, dispatcher)

	env := testEnvelope()
	env.CC = mail.AddressList{"a@x.com", "b@x.com"}
	err := a.Print(context.Background(), PrintRequest{
		HTMLText:    "<p>Hi</p>",
		ExportSides: SideBack,
		Email:       env,
	})
	require.NoError(t, err)
	assert.Equal(t, mail.AddressList{"b@x.com"}, dispatcher.env.CC)
}

func TestPrintBarcodeInlined(t *testing.T) {
	renderer := &fakeRenderer{out: pdfBytes(4096)}
	a := newTestAssembler(renderer, &fakeCompositor{}, &fakeDispatcher{})

	err := a.Print(context.Background(), PrintRequest{
		HTMLText:      "<html><body><p>Hi</p>[barcode]</body></html>",
		ExportSides:   SideBack,
		BarcodeValue:  "4006381333931",
		BarcodeFormat: "ean13",
		Email:         testEnvelope(),
	})
	require.NoError(t, err)
	assert.Contains(t, renderer.html, "<svg")
	assert.NotContains(t, renderer.html, "[barcode]")
}

func TestPrintBarcodeAppendedWithoutSlot(t *testing.T) {
	renderer := &fakeRenderer{out: pdfBytes(4096)}
	a := newTestAssembler(renderer, &fakeCompositor{}, &fakeDispatcher{})

	err := a.Print(context.Background(), PrintRequest{
		HTMLText:      "<html><body><p>Hi</p></body></html>",
		ExportSides:   SideBack,
		BarcodeValue:  "96385074",
		BarcodeFormat: "ean8",
		Email:         testEnvelope(),
	})
	require.NoError(t, err)
	svgIdx := strings.Index(renderer.html, "<svg")
	bodyIdx := strings.Index(renderer.html, "</body>")
	require.GreaterOrEqual(t, svgIdx, 0)
	assert.Less(t, svgIdx, bodyIdx)
}

func TestPrintBarcodeFailureDegradesToNoBarcode(t *testing.T) {
	renderer := &fakeRenderer{out: pdfBytes(4096)}
	dispatcher := &fakeDispatcher{}
	a := newTestAssembler(renderer, &fakeCompositor{}, dispatcher)

	err := a.Print(context.Background(), PrintRequest{
		HTMLText:      "<html><body><p>Hi</p></body></html>",
		ExportSides:   SideBack,
		BarcodeValue:  "1234567", // 7 digits cannot encode as EAN-8
		BarcodeFormat: "ean8",
		Email:         testEnvelope(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, dispatcher.calls)
	assert.NotContains(t, renderer.html, "<svg")
}

func TestPrintTooSmallSurfaceAborts(t *testing.T) {
	renderer := &fakeRenderer{out: pdfBytes(4096)}
	comp := &fakeCompositor{out: pdfBytes(compose.MinArtifactBytes)}
	dispatcher := &fakeDispatcher{}
	a := newTestAssembler(renderer, comp, dispatcher)

	err := a.Print(context.Background(), PrintRequest{
		HTMLText: "<p>Hi</p>",
		ImageURL: "https://img.example.com/card.jpg",
		Email:    testEnvelope(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, compose.ErrArtifactTooSmall))
	assert.Zero(t, dispatcher.calls)
}

func TestPrintCompositionErrorPropagates(t *testing.T) {
	comp := &fakeCompositor{err: compositor.ErrComposition}
	dispatcher := &fakeDispatcher{}
	a := newTestAssembler(&fakeRenderer{}, comp, dispatcher)

	err := a.Print(context.Background(), PrintRequest{
		ImageURL:    "https://img.example.com/gone.jpg",
		ExportSides: SideFront,
		Email:       testEnvelope(),
	})
	assert.True(t, errors.Is(err, compositor.ErrComposition))
	assert.Zero(t, dispatcher.calls)
}

func TestDownloadDefaultsToBack(t *testing.T) {
	renderer := &fakeRenderer{out: pdfBytes(4096)}
	comp := &fakeCompositor{}
	a := newTestAssembler(renderer, comp, &fakeDispatcher{})

	artifact, err := a.Download(context.Background(), DownloadRequest{
		HTMLText: "<p>Hi [firstname]</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "back.pdf", artifact.Name)
	assert.Zero(t, comp.calls)
}

func TestDownloadFrontUsesCustomFilename(t *testing.T) {
	comp := &fakeCompositor{out: pdfBytes(4096)}
	renderer := &fakeRenderer{}
	a := newTestAssembler(renderer, comp, &fakeDispatcher{})

	artifact, err := a.Download(context.Background(), DownloadRequest{
		ImageURL:         "https://img.example.com/card.jpg",
		ExportSide:       SideFront,
		FrontOrientation: "landscape",
		FrontFilename:    "weihnachten.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "weihnachten.pdf", artifact.Name)
	assert.Equal(t, compose.Landscape, comp.orientation)
	assert.Zero(t, renderer.calls)
}

func TestSubstitutePlaceholders(t *testing.T) {
	out := substitutePlaceholders("<p>[salutation] [firstname] [lastname], [unknown]</p>", map[string]string{
		"salutation": "Liebe",
		"firstname":  "Erika",
		"lastname":   "Mustermann",
	})
	assert.Equal(t, "<p>Liebe Erika Mustermann, [unknown]</p>", out)
}
