// Package document composes business documents — invoices, order
// confirmations, packing slips — from placeholder templates and renders
// them for download or email dispatch.
package document

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Type selects the template and the line-item row shape.
type Type string

const (
	TypeInvoice           Type = "invoice"
	TypeOrderConfirmation Type = "orderConfirmation"
	TypePackingSlip       Type = "packingSlip"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeInvoice, TypeOrderConfirmation, TypePackingSlip:
		return t, nil
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

// Address is a shipping or billing address. Company and state may be empty.
type Address struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Item is one document line. Zero quantity renders as 1 and zero tax rate
// as 19% — absent numerics never fail a render.
type Item struct {
	ArticleName   string          `json:"articleName"`
	ArticleNumber string          `json:"articleNumber"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Total         decimal.Decimal `json:"total"`
}

// Fields carries everything a document template can reference. Dates stay
// as wire strings until the formatter parses them, so a missing date fails
// at render time with a format error instead of printing garbage.
type Fields struct {
	ShippingAddress       Address         `json:"shippingAddress"`
	BillingAddress        Address         `json:"billingAddress"`
	DocumentNumber        string          `json:"documentNumber" validate:"required"`
	DocumentDate          string          `json:"documentDate" validate:"required"`
	DueDate               string          `json:"dueDate" validate:"required"`
	DeliveryDate          string          `json:"deliveryDate" validate:"required"`
	OrderNumber           string          `json:"orderNumber" validate:"required"`
	CostCenter            string          `json:"costCenter"`
	Items                 []Item          `json:"documentItems"`
	TotalNet              decimal.Decimal `json:"totalNet"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	TotalShipping         decimal.Decimal `json:"totalShipping"`
	VAT                   decimal.Decimal `json:"vat"`
	ExternalOrderNumber   string          `json:"externalOrderNumber"`
	ExternalProjectNumber string          `json:"externalProjectNumber"`
	ShippingID            string          `json:"shippingId"`
}
