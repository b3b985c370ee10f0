package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biglittlethings/paperwork/internal/format"
)

func sampleFields() Fields {
	return Fields{
		ShippingAddress: Address{
			Company: "Musterfirma GmbH",
			Name:    "Erika Mustermann",
			Street:  "Beispielstr. 1",
			City:    "Berlin",
			Zip:     "10115",
			Country: "Deutschland",
		},
		BillingAddress: Address{
			Company: "Musterfirma GmbH",
			Street:  "Rechnungsweg 2",
			City:    "Hamburg",
			Zip:     "20095",
			Country: "Deutschland",
		},
		DocumentNumber: "RE-2024-0042",
		DocumentDate:   "2024-03-01",
		DueDate:        "2024-03-15",
		DeliveryDate:   "2024-03-05",
		OrderNumber:    "ORD-77",
		Items: []Item{
			{
				ArticleName:   "Notizbuch A5",
				ArticleNumber: "NB-100",
				Quantity:      decimal.NewFromInt(2),
				TaxRate:       decimal.NewFromInt(19),
				Price:         decimal.NewFromFloat(9.95),
				Total:         decimal.NewFromFloat(19.90),
			},
			{
				ArticleName:   "Bleistift HB",
				ArticleNumber: "BL-7",
				Quantity:      decimal.NewFromInt(10),
				TaxRate:       decimal.NewFromInt(7),
				Price:         decimal.NewFromFloat(0.50),
				Total:         decimal.NewFromFloat(5),
			},
		},
		TotalNet:      decimal.NewFromFloat(24.90),
		TotalAmount:   decimal.NewFromFloat(29.63),
		TotalShipping: decimal.NewFromFloat(4.90),
		VAT:           decimal.NewFromFloat(4.73),
	}
}

func TestRenderTemplateRowCountAndOrder(t *testing.T) {
	out, err := RenderTemplate(templates[TypeInvoice], sampleFields(), TypeInvoice)
	require.NoError(t, err)

	// Exactly one expanded row per line item.
	assert.Equal(t, 2, strings.Count(out, "<tr><td>"))
	// 1-indexed, input order preserved.
	first := strings.Index(out, "<tr><td>1</td><td>2</td><td>NB-100</td>")
	second := strings.Index(out, "<tr><td>2</td><td>10</td><td>BL-7</td>")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestRenderTemplateFormatsValues(t *testing.T) {
	out, err := RenderTemplate(templates[TypeInvoice], sampleFields(), TypeInvoice)
	require.NoError(t, err)

	assert.Contains(t, out, "15.03.2024")
	assert.Contains(t, out, "29,63 €")
	assert.Contains(t, out, "19,00%")
	assert.Contains(t, out, "7,00%")
	assert.NotContains(t, out, "[documentNumber]")
	assert.Contains(t, out, "RE-2024-0042")
}

func TestRenderTemplatePackingSlipColumns(t *testing.T) {
	f := sampleFields()
	// Packing slips carry no tax or price data at all.
	for i := range f.Items {
		f.Items[i].TaxRate = decimal.Zero
		f.Items[i].Price = decimal.Zero
		f.Items[i].Total = decimal.Zero
	}
	out, err := RenderTemplate(templates[TypePackingSlip], f, TypePackingSlip)
	require.NoError(t, err)

	assert.Contains(t, out, "<tr><td>1</td><td>2</td><td>NB-100</td><td>Notizbuch A5</td></tr>")
	assert.Contains(t, out, "<tr><td>2</td><td>10</td><td>BL-7</td><td>Bleistift HB</td></tr>")
	// No tax/price/total cells in any row.
	assert.NotContains(t, out, "%</td>")
	rows := strings.Split(out, "<tr><td>")
	for _, row := range rows {
		if !strings.Contains(row, "</tr>") {
			continue
		}
		assert.NotContains(t, row[:strings.Index(row, "</tr>")], "€")
	}
}

func TestRenderTemplateDefaultsForAbsentNumerics(t *testing.T) {
	f := sampleFields()
	f.Items = []Item{{ArticleName: "Karte", ArticleNumber: "KA-1"}}
	f.TotalNet = decimal.Zero
	f.VAT = decimal.Zero

	out, err := RenderTemplate(templates[TypeInvoice], f, TypeInvoice)
	require.NoError(t, err)

	// quantity defaults to 1, tax rate to 19%, prices to formatted zero.
	assert.Contains(t, out, "<tr><td>1</td><td>1</td><td>KA-1</td><td>Karte</td><td>19,00%</td><td>0,00 €</td><td>0,00 €</td></tr>")
	assert.NotContains(t, out, "NaN")
}

func TestRenderTemplateUnknownTokenPassesThrough(t *testing.T) {
	out, err := RenderTemplate("<p>[documentNumber] [somethingElse]</p>", sampleFields(), TypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, "<p>RE-2024-0042 [somethingElse]</p>", out)
}

func TestRenderTemplateMissingDateFails(t *testing.T) {
	f := sampleFields()
	f.DeliveryDate = ""
	_, err := RenderTemplate(templates[TypeInvoice], f, TypeInvoice)
	require.Error(t, err)
	assert.True(t, errors.Is(err, format.ErrFormat))
}

func TestRenderTemplateEmptyOptionalStrings(t *testing.T) {
	f := sampleFields()
	// costCenter, state, external ids absent — substitute empty, never fail.
	out, err := RenderTemplate(templates[TypeInvoice], f, TypeInvoice)
	require.NoError(t, err)
	assert.NotContains(t, out, "[costCenter]")
	assert.NotContains(t, out, "[externalOrderNumber]")
}
