// Package model defines the core domain entities for the storefront service.
package model

import "time"

// Product is a catalog entry. The cart engine holds read-only cached copies
// fetched at session start; dimensions and weight feed the shipping
// computation.
//
// @Description Catalog product with pricing, stock, and shipping attributes
type Product struct {
	// ID is the catalog identifier.
	ID int `bson:"_id" json:"id" example:"5"`
	// Name is the display name.
	Name string `bson:"name" json:"name" example:"Terracotta Planter"`
	// UnitPrice is the price per unit in the shop's base currency.
	UnitPrice float64 `bson:"unit_price" json:"unit_price" example:"200"`
	// AvailableQuantity is the stock on hand. Zero means out of stock.
	AvailableQuantity int `bson:"available_quantity" json:"available_quantity" example:"12"`
	// LengthCm, WidthCm, HeightCm are the package dimensions in centimeters.
	LengthCm float64 `bson:"length_cm" json:"length_cm" example:"20"`
	WidthCm  float64 `bson:"width_cm" json:"width_cm" example:"15"`
	HeightCm float64 `bson:"height_cm" json:"height_cm" example:"10"`
	// WeightGrams is the physical weight in grams.
	WeightGrams float64 `bson:"weight_grams" json:"weight_grams" example:"850"`
	// ImageRefs holds storage references for product images.
	ImageRefs []string  `bson:"image_refs,omitempty" json:"image_refs,omitempty"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.AvailableQuantity > 0
}

// DimensionString renders the package dimensions in the "LxWxH" form
// carriers expect on rate lookups.
func (p Product) DimensionString() string {
	return formatDimensions(p.LengthCm, p.WidthCm, p.HeightCm)
}

// bonusProducts is the fixed table of promotional bonus products. These are
// grantable only through a free-bonus-product offer and always priced at
// zero; they are not part of the regular catalog.
var bonusProducts = map[int]Product{
	999001: {
		ID:          999001,
		Name:        "Lucky Clay Dragon",
		UnitPrice:   0,
		LengthCm:    6,
		WidthCm:     4,
		HeightCm:    4,
		WeightGrams: 60,
	},
	999002: {
		ID:          999002,
		Name:        "Mini Terracotta Diya",
		UnitPrice:   0,
		LengthCm:    5,
		WidthCm:     5,
		HeightCm:    3,
		WeightGrams: 40,
	},
}

// IsBonusProduct reports whether the given product ID belongs to the
// promotional bonus table.
func IsBonusProduct(productID int) bool {
	_, ok := bonusProducts[productID]
	return ok
}

// BonusProduct returns the bonus product for the given ID, if any.
func BonusProduct(productID int) (Product, bool) {
	p, ok := bonusProducts[productID]
	return p, ok
}

// BonusProductIDs returns the IDs of all promotional bonus products.
func BonusProductIDs() []int {
	ids := make([]int, 0, len(bonusProducts))
	for id := range bonusProducts {
		ids = append(ids, id)
	}
	return ids
}
