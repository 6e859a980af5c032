package service

import (
	"context"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/kvstore"
)

// Fixture products used across the service tests.
var (
	planter = model.Product{
		ID:                5,
		Name:              "Terracotta Planter",
		UnitPrice:         200,
		AvailableQuantity: 12,
		LengthCm:          20,
		WidthCm:           15,
		HeightCm:          10,
		WeightGrams:       850,
	}
	wallHanging = model.Product{
		ID:                7,
		Name:              "Macrame Wall Hanging",
		UnitPrice:         350,
		AvailableQuantity: 3,
		LengthCm:          60,
		WidthCm:           30,
		HeightCm:          5,
		WeightGrams:       400,
	}
	soldOutBowl = model.Product{
		ID:                9,
		Name:              "Ceramic Bowl",
		UnitPrice:         150,
		AvailableQuantity: 0,
		LengthCm:          12,
		WidthCm:           12,
		HeightCm:          6,
		WeightGrams:       300,
	}
)

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		GiftWrapCharge:        10,
		GreetingCardCharge:    15,
		FragilePackCharge:     25,
		MessageTruncateLen:    20,
		FreeShippingThreshold: 1000,
	}
}

func testShippingConfig() config.ShippingConfig {
	return config.ShippingConfig{
		FallbackCost:          80,
		PincodeLength:         6,
		VolumetricDivisor:     5,
		FreeShippingThreshold: 1000,
	}
}

func testCatalog(products ...model.Product) *CatalogService {
	c := NewCatalogService(nil)
	c.setProducts(products)
	return c
}

// cartFixture wires a cart service over an in-memory store with the
// standard fixture catalog.
type cartFixture struct {
	store   *kvstore.MemoryStore
	catalog *CatalogService
	cart    *CartServiceImpl
	pricing *PricingCalculatorService
}

func newCartFixture() cartFixture {
	store := kvstore.NewMemoryStore()
	catalog := testCatalog(planter, wallHanging, soldOutBowl)
	cart := NewCartService(store, catalog, 0)
	pricing := NewPricingCalculator(catalog, testPricingConfig())
	return cartFixture{store: store, catalog: catalog, cart: cart, pricing: pricing}
}

func (f cartFixture) mustCart(ctx context.Context, sessionID string) model.CartState {
	state, err := f.cart.Cart(ctx, sessionID)
	if err != nil {
		panic(err)
	}
	return state
}
