// Package dateutil stok defteri anahtarı için tek gün-indirgeme kuralını tutar.
// Aynı mantıksal günün iki farklı anahtara düşmemesi için her çağrı yolu
// buradaki fonksiyonları kullanmak zorundadır.
package dateutil

import "time"

// Day verilen zamanı UTC'ye çevirip o günün gece yarısına indirger.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay "2006-01-02" formatındaki tarihi UTC gece yarısı olarak okur.
func ParseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ParseFlexible önce tam zaman damgası (RFC3339), olmazsa salt tarih dener.
// Salt tarih UTC gece yarısı kabul edilir.
func ParseFlexible(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return ParseDay(s)
}
