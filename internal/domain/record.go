package domain

import "fmt"

// RecordSummary is one row of the catalog list as returned by the list
// endpoint. It is read-only to the client; editing goes through the
// detail drawer and the write endpoint.
type RecordSummary struct {
	ID           string // Server-assigned opaque identifier
	DisplayName  string
	SKU          string
	UnitPrice    float64
	SalePrice    float64 // 0 when no sale price is set
	StockLevel   int
	IsAvailable  bool
	ThumbnailURL string // Optional
}

// EffectiveSalePrice returns the sale price, falling back to the unit
// price when none is set.
func (r RecordSummary) EffectiveSalePrice() float64 {
	if r.SalePrice > 0 {
		return r.SalePrice
	}
	return r.UnitPrice
}

// FormattedPrice renders a price with two decimals, the way the admin
// table displays money.
func FormattedPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// RecordDetail is the full record fetched lazily by identifier.
// Superset of RecordSummary.
type RecordDetail struct {
	ID           string
	DisplayName  string
	Description  string
	SKU          string
	UnitPrice    float64
	SalePrice    float64
	StockLevel   int
	IsAvailable  bool
	ThumbnailURL string
	Barcode      string
	Category     string
	Tags         []string
}

// Summary projects the detail back onto its list-row shape.
func (d RecordDetail) Summary() RecordSummary {
	return RecordSummary{
		ID:           d.ID,
		DisplayName:  d.DisplayName,
		SKU:          d.SKU,
		UnitPrice:    d.UnitPrice,
		SalePrice:    d.SalePrice,
		StockLevel:   d.StockLevel,
		IsAvailable:  d.IsAvailable,
		ThumbnailURL: d.ThumbnailURL,
	}
}
