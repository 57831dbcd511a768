package report

import (
	"bytes"
	"html/template"
)

// Yazdırılabilir HTML şablonu; rod stratejisi bunu Chromium'dan PDF'e basar,
// format=html isteyen istemci doğrudan da kullanabilir.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #111; }
  h1 { text-align: center; }
  h2 { border-bottom: 1px solid #555; padding-bottom: 4px; margin-top: 28px; }
  table { border-collapse: collapse; width: 100%; margin-top: 8px; }
  th { text-align: left; border-bottom: 2px solid #333; padding: 4px 6px; font-size: 13px; }
  td { border-bottom: 1px solid #ddd; padding: 4px 6px; font-size: 12px; }
  .num { text-align: right; }
  .summary p, .filters p { margin: 2px 0; font-size: 13px; }
  .subtotal { font-weight: bold; margin-top: 6px; font-size: 13px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

{{if .Data.Filters}}
<div class="filters">
<h2>Uygulanan Filtreler</h2>
{{range .Data.Filters}}<p>{{.}}</p>{{end}}
</div>
{{end}}

<div class="summary">
<h2>Özet</h2>
<p>Toplam işlem: {{.Data.Summary.TransactionCount}}</p>
<p>Toplam miktar (Kg): {{printf "%.2f" .Data.Summary.TotalQuantityKg}}</p>
<p>Toplam tutar: {{printf "%.2f" .Data.Summary.TotalValue}}</p>
</div>

{{if .Combined}}
<h2>Ürün Bazında Özet</h2>
<table>
<thead><tr><th>Kod</th><th>Ürün</th><th class="num">Satılan (Kg)</th><th class="num">Ort. Fiyat/Kg</th><th class="num">Toplam</th><th class="num">Kalan Stok</th></tr></thead>
<tbody>
{{range .Data.Products}}
<tr><td>{{.ProductCode}}</td><td>{{.ProductName}}</td><td class="num">{{printf "%.2f" .SoldKg}}</td><td class="num">{{printf "%.2f" .AvgPricePerKg}}</td><td class="num">{{printf "%.2f" .TotalValue}}</td><td class="num">{{printf "%.2f" .CurrentStock}}</td></tr>
{{end}}
</tbody>
</table>

<h2>Ödenen Satışlar</h2>
{{template "salesTable" .Data.Paid.Sales}}
<p class="subtotal">Ara toplam: {{printf "%.2f" .Data.Paid.TotalQuantityKg}} kg / {{printf "%.2f" .Data.Paid.TotalValue}}</p>

<h2>Ödenmemiş Satışlar</h2>
{{template "salesTable" .Data.Unpaid.Sales}}
<p class="subtotal">Ara toplam: {{printf "%.2f" .Data.Unpaid.TotalQuantityKg}} kg / {{printf "%.2f" .Data.Unpaid.TotalValue}}</p>
{{else}}
<h2>Satış Verileri</h2>
{{template "salesTable" .Data.Sales}}
{{end}}

</body>
</html>

{{define "salesTable"}}
<table>
<thead><tr><th>Tarih</th><th>Müşteri</th><th>Ürün</th><th class="num">Miktar (Kg)</th><th class="num">Fiyat/Kg</th><th class="num">Toplam</th><th>Ödeme</th><th>Durum</th></tr></thead>
<tbody>
{{range .}}
<tr><td>{{.Date}}</td><td>{{.CustomerName}}</td><td>{{.ProductName}}</td><td class="num">{{printf "%.2f" .QuantityKg}}</td><td class="num">{{printf "%.2f" .PricePerKg}}</td><td class="num">{{printf "%.2f" .TotalValue}}</td><td>{{.PaymentMode}}</td><td>{{.PaymentStatus}}</td></tr>
{{end}}
</tbody>
</table>
{{end}}`))

type templateInput struct {
	Title    string
	Combined bool
	Data     *Data
}

// RenderHTML rapor verisini yazdırılabilir HTML belgesine çevirir.
func RenderHTML(data *Data, combined bool) ([]byte, error) {
	title := "Satış Raporu"
	if combined {
		title = "Birleşik Satış Raporu"
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, templateInput{Title: title, Combined: combined, Data: data}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
