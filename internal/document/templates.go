package document

// templates maps each document type to its HTML template. Placeholders use
// the bracket syntax [name] / [group.name] and are resolved by
// RenderTemplate; [documentItems] expands into one table row per line item.
var templates = map[Type]string{
	TypeInvoice:           invoiceTemplate,
	TypeOrderConfirmation: orderConfirmationTemplate,
	TypePackingSlip:       packingSlipTemplate,
}

const documentStyle = `
  <style>
    body { font-family: 'Open Sans', Helvetica, Arial, sans-serif; font-size: 10pt; color: #1f2933; margin: 48px; }
    header { display: flex; justify-content: space-between; margin-bottom: 32px; }
    h1 { font-size: 16pt; margin: 0 0 24px; }
    .address { line-height: 1.5; }
    .meta { text-align: right; line-height: 1.6; }
    .meta .label { color: #616e7c; padding-right: 12px; }
    table.items { width: 100%; border-collapse: collapse; margin-top: 16px; }
    table.items th, table.items td { padding: 6px 8px; border-bottom: 1px solid #cbd2d9; text-align: left; }
    table.items th { background: #f5f7fa; font-weight: 600; }
    .totals { margin-top: 16px; margin-left: auto; width: 280px; }
    .totals td { padding: 4px 8px; }
    .totals tr.grand td { font-weight: 700; border-top: 1px solid #1f2933; }
    footer { margin-top: 48px; font-size: 8pt; color: #616e7c; }
  </style>
`

const invoiceTemplate = `<!doctype html>
<html lang="de">
<head>
  <meta charset="utf-8" />` + documentStyle + `</head>
<body>
  <header>
    <div class="address">
      <strong>[billingAddress.company]</strong><br />
      [billingAddress.name]<br />
      [billingAddress.street]<br />
      [billingAddress.zip] [billingAddress.city] [billingAddress.state]<br />
      [billingAddress.country]
    </div>
    <div class="meta">
      <div><span class="label">Rechnungsnummer</span>[documentNumber]</div>
      <div><span class="label">Rechnungsdatum</span>[documentDate]</div>
      <div><span class="label">F&auml;llig am</span>[dueDate]</div>
      <div><span class="label">Lieferdatum</span>[deliveryDate]</div>
      <div><span class="label">Bestellnummer</span>[orderNumber]</div>
      <div><span class="label">Kostenstelle</span>[costCenter]</div>
      <div><span class="label">Externe Bestellnr.</span>[externalOrderNumber]</div>
      <div><span class="label">Projektnr.</span>[externalProjectNumber]</div>
    </div>
  </header>
  <h1>Rechnung</h1>
  <table class="items">
    <thead>
      <tr>
        <th>Pos.</th>
        <th>Menge</th>
        <th>Art.-Nr.</th>
        <th>Bezeichnung</th>
        <th>MwSt.</th>
        <th>Einzelpreis</th>
        <th>Gesamt</th>
      </tr>
    </thead>
    <tbody>
      [documentItems]
    </tbody>
  </table>
  <table class="totals">
    <tr><td>Zwischensumme (netto)</td><td>[totalNet]</td></tr>
    <tr><td>Versand</td><td>[totalShipping]</td></tr>
    <tr><td>MwSt.</td><td>[vat]</td></tr>
    <tr class="grand"><td>Gesamtbetrag</td><td>[totalAmount]</td></tr>
  </table>
  <footer>big little things GmbH &middot; Lieferanschrift: [shippingAddress.company] [shippingAddress.name], [shippingAddress.street], [shippingAddress.zip] [shippingAddress.city], [shippingAddress.country]</footer>
</body>
</html>`

const orderConfirmationTemplate = `<!doctype html>
<html lang="de">
<head>
  <meta charset="utf-8" />` + documentStyle + `</head>
<body>
  <header>
    <div class="address">
      <strong>[shippingAddress.company]</strong><br />
      [shippingAddress.name]<br />
      [shippingAddress.street]<br />
      [shippingAddress.zip] [shippingAddress.city] [shippingAddress.state]<br />
      [shippingAddress.country]
    </div>
    <div class="meta">
      <div><span class="label">Belegnummer</span>[documentNumber]</div>
      <div><span class="label">Belegdatum</span>[documentDate]</div>
      <div><span class="label">Lieferdatum</span>[deliveryDate]</div>
      <div><span class="label">Bestellnummer</span>[orderNumber]</div>
      <div><span class="label">Kostenstelle</span>[costCenter]</div>
      <div><span class="label">Externe Bestellnr.</span>[externalOrderNumber]</div>
    </div>
  </header>
  <h1>Auftragsbest&auml;tigung</h1>
  <table class="items">
    <thead>
      <tr>
        <th>Pos.</th>
        <th>Menge</th>
        <th>Art.-Nr.</th>
        <th>Bezeichnung</th>
        <th>MwSt.</th>
        <th>Einzelpreis</th>
        <th>Gesamt</th>
      </tr>
    </thead>
    <tbody>
      [documentItems]
    </tbody>
  </table>
  <table class="totals">
    <tr><td>Zwischensumme (netto)</td><td>[totalNet]</td></tr>
    <tr><td>Versand</td><td>[totalShipping]</td></tr>
    <tr><td>MwSt.</td><td>[vat]</td></tr>
    <tr class="grand"><td>Gesamtbetrag</td><td>[totalAmount]</td></tr>
  </table>
  <footer>big little things GmbH &middot; Rechnungsanschrift: [billingAddress.company], [billingAddress.street], [billingAddress.zip] [billingAddress.city], [billingAddress.country]</footer>
</body>
</html>`

const packingSlipTemplate = `<!doctype html>
<html lang="de">
<head>
  <meta charset="utf-8" />` + documentStyle + `</head>
<body>
  <header>
    <div class="address">
      <strong>[shippingAddress.company]</strong><br />
      [shippingAddress.name]<br />
      [shippingAddress.street]<br />
      [shippingAddress.zip] [shippingAddress.city] [shippingAddress.state]<br />
      [shippingAddress.country]
    </div>
    <div class="meta">
      <div><span class="label">Lieferscheinnummer</span>[documentNumber]</div>
      <div><span class="label">Belegdatum</span>[documentDate]</div>
      <div><span class="label">Lieferdatum</span>[deliveryDate]</div>
      <div><span class="label">Bestellnummer</span>[orderNumber]</div>
      <div><span class="label">Sendungsnummer</span>[shippingId]</div>
    </div>
  </header>
  <h1>Lieferschein</h1>
  <table class="items">
    <thead>
      <tr>
        <th>Pos.</th>
        <th>Menge</th>
        <th>Art.-Nr.</th>
        <th>Bezeichnung</th>
      </tr>
    </thead>
    <tbody>
      [documentItems]
    </tbody>
  </table>
  <footer>big little things GmbH</footer>
</body>
</html>`
