package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/biglittlethings/paperwork/internal/format"
)

// tokenPattern matches [name] and [group.name] placeholders.
var tokenPattern = regexp.MustCompile(`\[(\w+(?:\.\w+)?)\]`)

// Defaults applied to zero-valued line-item fields before formatting.
var (
	defaultQuantity = decimal.NewFromInt(1)
	defaultTaxRate  = decimal.NewFromInt(19)
)

// RenderTemplate substitutes every known placeholder in tpl with the
// formatted field value. Token resolution is driven purely by the field
// name, never by which template carries the token, so field semantics stay
// identical across document types; the type only decides the line-item row
// shape. Unknown tokens pass through unchanged — an unresolved placeholder
// should be visibly wrong in the output, not silently dropped.
func RenderTemplate(tpl string, f Fields, t Type) (string, error) {
	var firstErr error
	out := tokenPattern.ReplaceAllStringFunc(tpl, func(token string) string {
		name := token[1 : len(token)-1]
		value, known, err := resolveToken(name, f, t)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("token %s: %w", token, err)
			}
			return token
		}
		if !known {
			return token
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func resolveToken(name string, f Fields, t Type) (string, bool, error) {
	if field, ok := strings.CutPrefix(name, "shippingAddress."); ok {
		return addressField(f.ShippingAddress, field)
	}
	if field, ok := strings.CutPrefix(name, "billingAddress."); ok {
		return addressField(f.BillingAddress, field)
	}

	switch name {
	case "documentNumber":
		return f.DocumentNumber, true, nil
	case "orderNumber":
		return f.OrderNumber, true, nil
	case "costCenter":
		return f.CostCenter, true, nil
	case "externalOrderNumber":
		return f.ExternalOrderNumber, true, nil
	case "externalProjectNumber":
		return f.ExternalProjectNumber, true, nil
	case "shippingId":
		return f.ShippingID, true, nil
	case "documentDate":
		return formatDate(f.DocumentDate)
	case "dueDate":
		return formatDate(f.DueDate)
	case "deliveryDate":
		return formatDate(f.DeliveryDate)
	case "totalNet":
		return format.Currency(f.TotalNet), true, nil
	case "totalAmount":
		return format.Currency(f.TotalAmount), true, nil
	case "totalShipping":
		return format.Currency(f.TotalShipping), true, nil
	case "vat":
		return format.Currency(f.VAT), true, nil
	case "documentItems":
		return itemRows(f.Items, t), true, nil
	}
	return "", false, nil
}

func addressField(a Address, field string) (string, bool, error) {
	switch field {
	case "company":
		return a.Company, true, nil
	case "name":
		return a.Name, true, nil
	case "street":
		return a.Street, true, nil
	case "city":
		return a.City, true, nil
	case "state":
		return a.State, true, nil
	case "zip":
		return a.Zip, true, nil
	case "country":
		return a.Country, true, nil
	}
	return "", false, nil
}

func formatDate(s string) (string, bool, error) {
	t, err := format.ParseDate(s)
	if err != nil {
		return "", true, err
	}
	return format.Date(t), true, nil
}

// itemRows expands the line-item collection into table rows, 1-indexed, in
// input order. Packing slips carry no tax or price columns. The line total
// is the item's total as supplied — quantity is already reflected in it.
func itemRows(items []Item, t Type) string {
	var b strings.Builder
	for i, item := range items {
		quantity := item.Quantity
		if quantity.IsZero() {
			quantity = defaultQuantity
		}

		if t == TypePackingSlip {
			fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				i+1, quantity, item.ArticleNumber, item.ArticleName)
			continue
		}

		taxRate := item.TaxRate
		if taxRate.IsZero() {
			taxRate = defaultTaxRate
		}
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			i+1, quantity, item.ArticleNumber, item.ArticleName,
			format.Percent(taxRate), format.Currency(item.Price), format.Currency(item.Total))
	}
	return b.String()
}
