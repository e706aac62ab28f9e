package models

import "time"

// Product rows are loaded from the catalog CSV; the csv tags drive the
// header-mapped import.
type Product struct {
	ID               int       `json:"id" csv:"-"`
	SKU              string    `json:"sku" csv:"sku"`
	Name             string    `json:"name" csv:"name"`
	Description      string    `json:"description" csv:"description"`
	Category         string    `json:"category" csv:"category"`
	Price            float64   `json:"price" csv:"price"`
	EfficiencyRating string    `json:"efficiencyRating" csv:"efficiency_rating"`
	AnnualKWh        float64   `json:"annualKwh" csv:"annual_kwh"`
	CreatedAt        time.Time `json:"createdAt" csv:"-"`
}

type ProductSearchResult struct {
	Products []Product `json:"products"`
	Total    uint64    `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}
