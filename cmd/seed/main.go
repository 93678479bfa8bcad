// Seeds the store with a random catalog, customers, and order history so the
// dashboard charts have something to show. Intended for development against
// the in-memory repositories or a scratch DynamoDB environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"storefront-backend/domain/entities"
	"storefront-backend/infrastructure/config"
	"storefront-backend/infrastructure/di"

	"go.uber.org/zap"
)

var categories = []string{"laptop", "mobile", "camera", "headphones", "shoes", "watch"}

var firstNames = []string{"Aarav", "Diya", "Ishaan", "Maya", "Rohan", "Sara", "Vikram", "Zoya", "Kabir", "Anya"}

func main() {
	productCount := flag.Int("products", 40, "number of products to create")
	userCount := flag.Int("users", 25, "number of users to create")
	orderCount := flag.Int("orders", 120, "number of orders to create")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	products := make([]*entities.Product, 0, *productCount)
	for i := 0; i < *productCount; i++ {
		category := categories[rng.Intn(len(categories))]
		product, err := entities.NewProduct(
			fmt.Sprintf("%s %d", category, i+1),
			fmt.Sprintf("uploads/%s-%d.jpg", category, i+1),
			category,
			float64(rng.Intn(9900)+100),
			rng.Intn(80),
		)
		if err != nil {
			logger.Fatal("Failed to build product", zap.Error(err))
		}
		// Spread creation dates across the past year so the charts fill.
		product.CreatedAt = now.AddDate(0, 0, -rng.Intn(365))
		product.UpdatedAt = product.CreatedAt

		if err := container.ProductRepo.Create(ctx, product); err != nil {
			logger.Fatal("Failed to create product", zap.Error(err))
		}
		products = append(products, product)
	}
	logger.Info("Seeded products", zap.Int("count", len(products)))

	users := make([]*entities.User, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		name := firstNames[rng.Intn(len(firstNames))]
		gender := entities.GenderMale
		if rng.Intn(2) == 0 {
			gender = entities.GenderFemale
		}
		dob := now.AddDate(-(rng.Intn(45) + 15), 0, -rng.Intn(365))

		user, err := entities.NewUser(
			fmt.Sprintf("seed-user-%d", i+1),
			fmt.Sprintf("%s %d", name, i+1),
			fmt.Sprintf("%s%d@example.com", name, i+1),
			fmt.Sprintf("https://example.com/avatars/%d.png", i+1),
			gender,
			dob,
		)
		if err != nil {
			logger.Fatal("Failed to build user", zap.Error(err))
		}
		user.CreatedAt = now.AddDate(0, 0, -rng.Intn(365))
		user.UpdatedAt = user.CreatedAt

		if err := container.UserRepo.Create(ctx, user); err != nil {
			logger.Fatal("Failed to create user", zap.Error(err))
		}
		users = append(users, user)
	}
	logger.Info("Seeded users", zap.Int("count", len(users)))

	orders := 0
	for i := 0; i < *orderCount; i++ {
		user := users[rng.Intn(len(users))]
		lineCount := rng.Intn(3) + 1

		items := make([]entities.OrderItem, 0, lineCount)
		subTotal := 0.0
		for j := 0; j < lineCount; j++ {
			product := products[rng.Intn(len(products))]
			quantity := rng.Intn(3) + 1
			items = append(items, entities.OrderItem{
				Name:      product.Name,
				Photo:     product.Photo,
				Price:     product.Price,
				Quantity:  quantity,
				ProductID: product.ID,
			})
			subTotal += product.Price * float64(quantity)
		}

		tax := subTotal * 0.18
		shipping := 0.0
		if subTotal < 1000 {
			shipping = 200
		}
		discount := 0.0
		if rng.Intn(4) == 0 {
			discount = float64(rng.Intn(500))
		}

		order, err := entities.NewOrder(user.ID, entities.ShippingInfo{
			Address: fmt.Sprintf("%d Market Street", rng.Intn(200)+1),
			City:    "Mumbai",
			State:   "Maharashtra",
			Country: "India",
			PinCode: 400001 + rng.Intn(99),
		}, items, subTotal, tax, shipping, discount, subTotal+tax+shipping-discount)
		if err != nil {
			logger.Fatal("Failed to build order", zap.Error(err))
		}
		order.CreatedAt = now.AddDate(0, 0, -rng.Intn(365))
		order.UpdatedAt = order.CreatedAt
		for rng.Intn(2) == 0 && order.AdvanceStatus() {
		}

		if err := container.OrderRepo.Create(ctx, order); err != nil {
			logger.Fatal("Failed to create order", zap.Error(err))
		}
		orders++
	}
	logger.Info("Seeded orders", zap.Int("count", orders))
}
