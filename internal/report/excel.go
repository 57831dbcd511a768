package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderExcel filtrelenmiş satışları tek sayfalık .xlsx'e yazar.
func RenderExcel(data *Data) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	headers := []string{"Tarih", "Müşteri", "Ürün", "Kod", "Miktar (Kg)", "Fiyat/Kg", "Toplam", "Ödeme", "Durum"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, s := range data.Sales {
		values := []any{s.Date, s.CustomerName, s.ProductName, s.ProductCode, s.QuantityKg, s.PricePerKg, s.TotalValue, s.PaymentMode, s.PaymentStatus}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Tablonun altına toplam satırı
	summaryRow := len(data.Sales) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Toplam")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow), data.Summary.TotalQuantityKg)
	f.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), data.Summary.TotalValue)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
