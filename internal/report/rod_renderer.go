package report

import (
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodRenderer raporu HTML şablonundan headless Chromium ile PDF'e basar.
// fpdf stratejisiyle aynı veriyi işler; tipografi/tablolarda daha sadık ama
// tarayıcı açtığı için daha maliyetlidir.
type RodRenderer struct{}

func NewRodRenderer() *RodRenderer {
	return &RodRenderer{}
}

func (r *RodRenderer) RenderSales(data *Data) ([]byte, error) {
	html, err := RenderHTML(data, false)
	if err != nil {
		return nil, err
	}
	return r.printPDF(string(html))
}

func (r *RodRenderer) RenderCombined(data *Data) ([]byte, error) {
	html, err := RenderHTML(data, true)
	if err != nil {
		return nil, err
	}
	return r.printPDF(string(html))
}

func (r *RodRenderer) printPDF(html string) ([]byte, error) {
	u, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("chromium başlatılamadı: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("tarayıcıya bağlanılamadı: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("sayfa açılamadı: %w", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("rapor içeriği yüklenemedi: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("sayfa yüklenemedi: %w", err)
	}

	printBackground := true
	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: printBackground})
	if err != nil {
		return nil, fmt.Errorf("PDF üretilemedi: %w", err)
	}

	return io.ReadAll(stream)
}
