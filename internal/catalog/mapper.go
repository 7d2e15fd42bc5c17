package catalog

import "github.com/mfergus/tiller/internal/domain"

func mapSummary(d recordDTO) domain.RecordSummary {
	var thumb string
	if len(d.ImageURL) > 0 {
		thumb = d.ImageURL[0]
	}
	return domain.RecordSummary{
		ID:           d.ID,
		DisplayName:  d.Name,
		SKU:          d.SKU,
		UnitPrice:    d.Price,
		SalePrice:    d.SalePrice,
		StockLevel:   d.StockLevel,
		IsAvailable:  d.IsAvailable,
		ThumbnailURL: thumb,
	}
}

// MapSummaries converts a list response into domain rows, preserving
// server order.
func MapSummaries(dtos []recordDTO) []domain.RecordSummary {
	out := make([]domain.RecordSummary, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, mapSummary(d))
	}
	return out
}

// MapDetail converts a single-record response into the full domain shape.
func MapDetail(d recordDTO) *domain.RecordDetail {
	var thumb string
	if len(d.ImageURL) > 0 {
		thumb = d.ImageURL[0]
	}
	return &domain.RecordDetail{
		ID:           d.ID,
		DisplayName:  d.Name,
		Description:  d.Description,
		SKU:          d.SKU,
		UnitPrice:    d.Price,
		SalePrice:    d.SalePrice,
		StockLevel:   d.StockLevel,
		IsAvailable:  d.IsAvailable,
		ThumbnailURL: thumb,
		Barcode:      d.Barcode,
		Category:     d.Category,
		Tags:         d.Tags,
	}
}
