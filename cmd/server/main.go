package main

import (
	"log"
	"net/http"

	"freshcart-be/internal/api"
	"freshcart-be/internal/category"
	"freshcart-be/internal/checkout"
	"freshcart-be/internal/config"
	"freshcart-be/internal/dashboard"
	"freshcart-be/internal/db"
	"freshcart-be/internal/logger"
	"freshcart-be/internal/media"
	"freshcart-be/internal/order"
	"freshcart-be/internal/payment"
	"freshcart-be/internal/product"
	"freshcart-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	uploader, err := media.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("failed to init image storage: %v", err)
	}

	gateway := payment.NewPayPalGateway(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	checkoutSvc := checkout.NewService(gateway, orderSvc)

	dashboardRepo := dashboard.NewRepository(database)
	dashboardSvc := dashboard.NewService(dashboardRepo)

	router := api.NewRouter(api.Deps{
		Users:      userSvc,
		Categories: categorySvc,
		Products:   productSvc,
		Orders:     orderSvc,
		Dashboard:  dashboardSvc,
		Checkout:   checkoutSvc,
		Gateway:    gateway,
		Uploader:   uploader,
		ClientURL:  cfg.ClientURL,
	})

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
