package seeders

import (
	"time"

	"github.com/shopspring/decimal"

	"cresly-pos/config"
	"cresly-pos/models"
)

func price(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Seed loads the dish catalog, the price list and a menu for today. Every
// write is a FirstOrCreate, so repeated startups do not duplicate rows.
func Seed() {
	db := config.DB
	log := config.GetLogger()

	dishes := []models.Dish{
		{Name: "Sopa de pollo", Kind: models.DishKindSoup},
		{Name: "Caldo de gallina", Kind: models.DishKindSoup},
		{Name: "Arroz con pollo", Kind: models.DishKindSecond},
		{Name: "Lomo saltado", Kind: models.DishKindSecond},
		{Name: "Tallarin verde", Kind: models.DishKindSecond},
		{Name: "Chicha morada", Kind: models.DishKindJuice},
		{Name: "Maracuya", Kind: models.DishKindJuice},
		{Name: "Gelatina", Kind: models.DishKindDessert},
		{Name: "Huevo frito", Kind: models.DishKindExtra},
		{Name: "Porcion de arroz", Kind: models.DishKindExtra},
	}
	for _, dish := range dishes {
		db.FirstOrCreate(&dish, models.Dish{Name: dish.Name})
	}

	products := []models.Product{
		{Name: models.ProductCombo, PriceDineIn: price("12.00"), PriceToGo: price("13.00")},
		{Name: models.ProductSoup, PriceDineIn: price("7.00"), PriceToGo: price("8.00")},
		{Name: models.ProductSecond, PriceDineIn: price("9.00"), PriceToGo: price("10.00")},
		{Name: models.ProductJuice, PriceDineIn: price("3.00"), PriceToGo: price("3.50")},
		{Name: models.ProductDessert, PriceDineIn: price("2.50"), PriceToGo: price("2.50")},
		{Name: models.ProductExtra, PriceDineIn: price("4.00"), PriceToGo: price("4.00")},
	}
	for _, product := range products {
		db.FirstOrCreate(&product, models.Product{Name: product.Name})
	}

	// Today's menu: two soups and two seconds with a ceiling, juices and
	// extras without one.
	today := time.Now().Format("2006-01-02")
	var menu models.MenuDay
	db.FirstOrCreate(&menu, models.MenuDay{Date: today})

	var count int64
	db.Model(&models.MenuDaySlot{}).Where("menu_day_id = ?", menu.ID).Count(&count)
	if count == 0 {
		slots := []struct {
			dishName string
			category string
			quantity int
		}{
			{"Sopa de pollo", models.DishKindSoup, 30},
			{"Caldo de gallina", models.DishKindSoup, 20},
			{"Arroz con pollo", models.DishKindSecond, 25},
			{"Lomo saltado", models.DishKindSecond, 25},
			{"Chicha morada", models.DishKindJuice, 0},
			{"Maracuya", models.DishKindJuice, 0},
			{"Huevo frito", models.DishKindExtra, 0},
			{"Porcion de arroz", models.DishKindExtra, 0},
		}
		for _, s := range slots {
			var dish models.Dish
			if err := db.Where("name = ?", s.dishName).First(&dish).Error; err != nil {
				continue
			}
			db.Create(&models.MenuDaySlot{
				MenuDayID:          menu.ID,
				DishID:             dish.ID,
				Category:           s.category,
				ConfiguredQuantity: s.quantity,
				RemainingQuantity:  s.quantity,
			})
		}
	}

	log.Info("seeding finished: dish catalog, price list and today's menu")
}
