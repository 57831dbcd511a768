package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Renderer iki değiştirilebilir PDF stratejisinin ortak sözleşmesi: doğrudan
// çizim (fpdf) ve headless tarayıcı (rod). Veri sözleşmesi aynıdır.
type Renderer interface {
	RenderSales(data *Data) ([]byte, error)
	RenderCombined(data *Data) ([]byte, error)
}

// NewRenderer config'deki strateji adına göre renderer seçer.
func NewRenderer(kind string) Renderer {
	if kind == "rod" {
		return NewRodRenderer()
	}
	return NewFPDFRenderer()
}

// FPDFRenderer raporu doğrudan PDF komutlarıyla çizer.
// Çekirdek fontlar cp1252 olduğundan sabit başlıklar Türkçe aksansız yazılır;
// veri alanları translator'dan geçer.
type FPDFRenderer struct{}

func NewFPDFRenderer() *FPDFRenderer {
	return &FPDFRenderer{}
}

var salesHeaders = []string{"Tarih", "Musteri", "Urun", "Miktar (Kg)", "Fiyat/Kg", "Toplam", "Odeme", "Durum"}
var salesWidths = []float64{22, 35, 32, 20, 18, 24, 18, 18}

func (r *FPDFRenderer) RenderSales(data *Data) ([]byte, error) {
	pdf, tr := r.newDoc("Satis Raporu")

	r.writeFilters(pdf, tr, data)
	r.writeSummary(pdf, tr, data)
	r.writeSalesTable(pdf, tr, "Satis Verileri", data.Sales)

	return output(pdf)
}

func (r *FPDFRenderer) RenderCombined(data *Data) ([]byte, error) {
	pdf, tr := r.newDoc("Birlesik Satis Raporu")

	r.writeFilters(pdf, tr, data)
	r.writeSummary(pdf, tr, data)
	r.writeProductAggregates(pdf, tr, data)
	r.writeBreakdown(pdf, tr, "Odenen Satislar", &data.Paid)
	r.writeBreakdown(pdf, tr, "Odenmemis Satislar", &data.Unpaid)

	return output(pdf)
}

func (r *FPDFRenderer) newDoc(title string) (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 12)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	return pdf, tr
}

func (r *FPDFRenderer) writeFilters(pdf *gofpdf.Fpdf, tr func(string) string, data *Data) {
	if len(data.Filters) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "U", 13)
	pdf.CellFormat(0, 8, "Uygulanan Filtreler", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range data.Filters {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (r *FPDFRenderer) writeSummary(pdf *gofpdf.Fpdf, tr func(string) string, data *Data) {
	pdf.SetFont("Helvetica", "U", 14)
	pdf.CellFormat(0, 8, "Ozet", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Toplam islem: %d", data.Summary.TransactionCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Toplam miktar (Kg): %.2f", data.Summary.TotalQuantityKg), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Toplam tutar: %.2f", data.Summary.TotalValue), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func (r *FPDFRenderer) writeSalesTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, rows []SaleRow) {
	pdf.SetFont("Helvetica", "U", 14)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	r.drawTableHeader(pdf)

	for _, row := range rows {
		// Sayfa sonunda başlığı yeniden çiz (kaynak rapor düzeniyle aynı)
		if pdf.GetY() > 270 {
			pdf.AddPage()
			r.drawTableHeader(pdf)
		}

		cells := []string{
			row.Date,
			tr(row.CustomerName),
			tr(row.ProductName),
			fmt.Sprintf("%.2f", row.QuantityKg),
			fmt.Sprintf("%.2f", row.PricePerKg),
			fmt.Sprintf("%.2f", row.TotalValue),
			row.PaymentMode,
			row.PaymentStatus,
		}
		for i, cell := range cells {
			pdf.CellFormat(salesWidths[i], 6, cell, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (r *FPDFRenderer) drawTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range salesHeaders {
		pdf.CellFormat(salesWidths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
}

func (r *FPDFRenderer) writeProductAggregates(pdf *gofpdf.Fpdf, tr func(string) string, data *Data) {
	pdf.SetFont("Helvetica", "U", 14)
	pdf.CellFormat(0, 8, "Urun Bazinda Ozet", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	headers := []string{"Kod", "Urun", "Satilan (Kg)", "Ort. Fiyat/Kg", "Toplam", "Kalan Stok"}
	widths := []float64{25, 50, 28, 28, 28, 28}

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)

	for _, p := range data.Products {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 9)
		}
		cells := []string{
			p.ProductCode,
			tr(p.ProductName),
			fmt.Sprintf("%.2f", p.SoldKg),
			fmt.Sprintf("%.2f", p.AvgPricePerKg),
			fmt.Sprintf("%.2f", p.TotalValue),
			fmt.Sprintf("%.2f", p.CurrentStock),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (r *FPDFRenderer) writeBreakdown(pdf *gofpdf.Fpdf, tr func(string) string, title string, b *Breakdown) {
	if pdf.GetY() > 240 {
		pdf.AddPage()
	}
	r.writeSalesTable(pdf, tr, title, b.Sales)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Ara toplam: %.2f kg / %.2f", b.TotalQuantityKg, b.TotalValue), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
