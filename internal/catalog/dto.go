package catalog

// recordDTO is the wire shape of a record from the catalog service.
// List responses carry the summary fields only; the single-record
// endpoint fills in the rest.
type recordDTO struct {
	ID           string   `json:"uuid"`
	Name         string   `json:"name"`
	SKU          string   `json:"sku"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	SalePrice    float64  `json:"salePrice"`
	StockLevel   int      `json:"stockLevel"`
	IsAvailable  bool     `json:"isAvailable"`
	ImageURL     []string `json:"imageUrl"`
	Barcode      string   `json:"barcode"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

// listResponse is the GET /records envelope.
type listResponse struct {
	Records []recordDTO `json:"records"`
}

// errorBody is the non-200 response body.
type errorBody struct {
	Message string `json:"message"`
}
