// Package card composes greeting cards: an image front surface, an HTML
// back surface with recipient placeholders and an optional barcode, printed
// to email attachments or downloaded one surface at a time.
package card

import (
	"github.com/biglittlethings/paperwork/internal/mail"
)

// Sides selects which surfaces to produce.
type Sides string

const (
	SideFront Sides = "front"
	SideBack  Sides = "back"
	SideBoth  Sides = "both"
)

func (s Sides) wantsFront() bool { return s == SideFront || s == SideBoth }
func (s Sides) wantsBack() bool  { return s == SideBack || s == SideBoth }

// Default attachment filenames when the caller supplies none.
const (
	defaultFrontFilename = "front.pdf"
	defaultBackFilename  = "back.pdf"
)

// PrintRequest is the POST /greeting-cards/print body.
type PrintRequest struct {
	HTMLText         string            `json:"htmlText"`
	ImageURL         string            `json:"imageUrl" validate:"omitempty,url"`
	Placeholders     map[string]string `json:"placeholders"`
	FrontOrientation string            `json:"frontOrientation" validate:"omitempty,oneof=portrait landscape"`
	BackOrientation  string            `json:"backOrientation" validate:"omitempty,oneof=portrait landscape"`
	Email            mail.Envelope     `json:"email" validate:"required"`
	ExportSides      Sides             `json:"exportSides" validate:"omitempty,oneof=front back both"`
	FrontFilename    string            `json:"frontFilename" validate:"omitempty,max=256"`
	BackFilename     string            `json:"backFilename" validate:"omitempty,max=256"`
	BarcodeValue     string            `json:"barcodeValue"`
	BarcodeFormat    string            `json:"barcodeFormat" validate:"omitempty,oneof=itf14 ean13 ean8 upc upce"`
}

// DownloadRequest is the POST /greeting-cards/download body; it produces a
// single surface and no email.
type DownloadRequest struct {
	HTMLText         string            `json:"htmlText"`
	ImageURL         string            `json:"imageUrl" validate:"omitempty,url"`
	Placeholders     map[string]string `json:"placeholders"`
	FrontOrientation string            `json:"frontOrientation" validate:"omitempty,oneof=portrait landscape"`
	BackOrientation  string            `json:"backOrientation" validate:"omitempty,oneof=portrait landscape"`
	ExportSide       Sides             `json:"exportSide" validate:"omitempty,oneof=front back"`
	FrontFilename    string            `json:"frontFilename" validate:"omitempty,max=256"`
	BackFilename     string            `json:"backFilename" validate:"omitempty,max=256"`
	BarcodeValue     string            `json:"barcodeValue"`
	BarcodeFormat    string            `json:"barcodeFormat" validate:"omitempty,oneof=itf14 ean13 ean8 upc upce"`
}

func orDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
