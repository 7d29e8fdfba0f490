package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"cresly-pos/models"
)

var DB *gorm.DB

func ConnectDatabase() {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" {
		dbHost = "127.0.0.1"
	}
	if dbPort == "" {
		dbPort = "3306"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	DB = db
}

// Migrate is shared with the test suites, which run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Dish{},
		&models.Product{},
		&models.MenuDay{},
		&models.MenuDaySlot{},
		&models.Order{},
		&models.OrderLine{},
		&models.CashRegister{},
		&models.Expense{},
	)
}
