package document

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/biglittlethings/paperwork/internal/compose"
	"github.com/biglittlethings/paperwork/internal/format"
	"github.com/biglittlethings/paperwork/internal/mail"
	"github.com/biglittlethings/paperwork/internal/render"
)

// orgSuffix is appended to every download filename.
const orgSuffix = "big little things GmbH"

var downloadNames = map[Type]string{
	TypeInvoice:           "Sales Invoice",
	TypeOrderConfirmation: "Order Confirmation Document",
	TypePackingSlip:       "Packing Slip Document",
}

var subjectNames = map[Type]string{
	TypeInvoice:           "Invoice",
	TypeOrderConfirmation: "Order Confirmation Document",
	TypePackingSlip:       "Packing Slip Document",
}

var bodyNames = map[Type]string{
	TypeInvoice:           "invoice",
	TypeOrderConfirmation: "order confirmation document",
	TypePackingSlip:       "packing slip document",
}

// PageRenderer is the slice of the page renderer the assembler needs.
type PageRenderer interface {
	RenderPDF(ctx context.Context, html string, opts render.Options) ([]byte, error)
}

// Assembler produces the single PDF surface of a business document and
// packages it for download or email dispatch.
type Assembler struct {
	renderer      PageRenderer
	dispatcher    mail.Dispatcher
	stylesheetURL string
}

func NewAssembler(renderer PageRenderer, dispatcher mail.Dispatcher, stylesheetURL string) *Assembler {
	return &Assembler{
		renderer:      renderer,
		dispatcher:    dispatcher,
		stylesheetURL: stylesheetURL,
	}
}

// Download composes the document body and returns the size-checked artifact
// named for a content-disposition download.
func (a *Assembler) Download(ctx context.Context, f Fields, t Type) (compose.Artifact, error) {
	filename, err := downloadFilename(f, t)
	if err != nil {
		return compose.Artifact{}, err
	}

	html, err := RenderTemplate(templates[t], f, t)
	if err != nil {
		return compose.Artifact{}, err
	}

	pdf, err := a.renderer.RenderPDF(ctx, html, render.Options{
		Orientation:   compose.Portrait,
		Scale:         1,
		StylesheetURL: a.stylesheetURL,
	})
	if err != nil {
		return compose.Artifact{}, err
	}

	artifact := compose.Artifact{Name: filename, Data: pdf}
	if err := compose.CheckSize(artifact); err != nil {
		return compose.Artifact{}, err
	}
	return artifact, nil
}

// Email composes the document, packages it as a single base64 attachment,
// and hands it to the dispatcher. Subject and body text are derived from
// the document type; cc/bcc are de-duplicated against the primary
// recipients.
func (a *Assembler) Email(ctx context.Context, f Fields, t Type, env mail.Envelope) error {
	artifact, err := a.Download(ctx, f, t)
	if err != nil {
		return err
	}

	env.Subject = fmt.Sprintf("%s %s", subjectNames[t], f.DocumentNumber)
	env.Text = fmt.Sprintf("Please find attached the %s.", bodyNames[t])
	env.DeduplicateAgainstTo()

	attachment := mail.Attachment{
		Filename:    artifact.Name,
		Content:     base64.StdEncoding.EncodeToString(artifact.Data),
		Type:        "application/pdf",
		Disposition: "attachment",
	}
	return a.dispatcher.Send(ctx, env, []mail.Attachment{attachment})
}

// downloadFilename builds "<name>-<number>-<due DD-MM-YYYY>-<org>.pdf".
func downloadFilename(f Fields, t Type) (string, error) {
	due, err := format.ParseDate(f.DueDate)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s-%s.pdf",
		downloadNames[t], f.DocumentNumber, due.Format("02-01-2006"), orgSuffix), nil
}
