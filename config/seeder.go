package config

import (
	"log"

	"fleamarket_backend/models"
	"fleamarket_backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func SeedUsers(db *gorm.DB) {
	log.Println("Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username:  "admin",
			Email:     "admin@example.com",
			Password:  password,
			FirstName: "Admin",
			LastName:  "User",
			IsAdmin:   true,
		},
		{
			Username:  "seller1",
			Email:     "seller1@example.com",
			Password:  password,
			FirstName: "Seller",
			LastName:  "One",
		},
		{
			Username:  "buyer1",
			Email:     "buyer1@example.com",
			Password:  password,
			FirstName: "Buyer",
			LastName:  "One",
		},
	}

	for _, user := range users {
		var existingUser models.User
		if err := db.Where("username = ?", user.Username).First(&existingUser).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Username, err)
				} else {
					log.Printf("User seeded: %s (ID: %d)", user.Username, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("Seeding users complete.")
}

func SeedProducts(db *gorm.DB) {
	log.Println("Seeding products...")

	var seller models.User
	if err := db.Where("username = ?", "seller1").First(&seller).Error; err != nil {
		log.Printf("Seed seller missing, skipping products: %v", err)
		return
	}

	products := []models.Product{
		{
			SellerID: seller.ID,
			Name:     "Mechanical Keyboard",
			Price:    decimal.NewFromFloat(45.00),
			Status:   models.ProductOnSale,
		},
		{
			SellerID: seller.ID,
			Name:     "Road Bike",
			Price:    decimal.NewFromFloat(220.50),
			Status:   models.ProductOnSale,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := db.Where("seller_id = ? AND name = ?", product.SellerID, product.Name).
			First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&product).Error; err != nil {
				log.Printf("Failed to seed product %s: %v", product.Name, err)
			}
		}
	}

	log.Println("Seeding products complete.")
}
