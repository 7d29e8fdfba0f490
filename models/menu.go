package models

import (
	"github.com/shopspring/decimal"
)

const (
	DishKindSoup    = "soup"
	DishKindSecond  = "second"
	DishKindJuice   = "juice"
	DishKindDessert = "dessert"
	DishKindExtra   = "extra"
)

// Sellable product kinds used by the price catalog.
const (
	ProductCombo   = "combo"
	ProductSoup    = "soup"
	ProductSecond  = "second"
	ProductJuice   = "juice"
	ProductDessert = "dessert"
	ProductExtra   = "extra"
)

type Dish struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Kind string `gorm:"type:varchar(20);not null;index" json:"kind"`
}

// Product is the price catalog: one row per sellable kind, with separate
// dine-in and to-go prices. Order lines snapshot their own unit price at
// creation; Product is only consulted to quote a price when the cart did not
// send one.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
	PriceDineIn decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"price_dine_in"`
	PriceToGo   decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"price_to_go"`
}

type MenuDay struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Date      string        `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	DessertID *uint         `json:"dessert_id,omitempty"`
	Dessert   *Dish         `gorm:"foreignKey:DessertID" json:"dessert,omitempty"`
	Slots     []MenuDaySlot `json:"slots"`
}

// MenuDaySlot is one dish offered on one day. ConfiguredQuantity is fixed at
// menu-setup time; RemainingQuantity is the inventory ledger's counter and
// never goes below zero. Juice and extra slots carry no ceiling.
type MenuDaySlot struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	MenuDayID          uint    `gorm:"index;not null" json:"menu_day_id"`
	DishID             uint    `gorm:"not null" json:"dish_id"`
	Dish               *Dish   `gorm:"foreignKey:DishID" json:"dish,omitempty"`
	Category           string  `gorm:"type:varchar(20);not null" json:"category"`
	Note               *string `gorm:"type:varchar(100)" json:"note,omitempty"`
	ConfiguredQuantity int     `gorm:"not null;default:0" json:"configured_quantity"`
	RemainingQuantity  int     `gorm:"not null;default:0" json:"remaining_quantity"`
}
