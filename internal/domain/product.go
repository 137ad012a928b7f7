package domain

import "github.com/shopspring/decimal"

type ProductImage struct {
	URL string `json:"url"`
}

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Images   []ProductImage  `json:"images"`
}
