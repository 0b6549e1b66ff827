package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/config"
	"github.com/hayamij/PY-CameraShop-sub000/internal/delivery"
	"github.com/hayamij/PY-CameraShop-sub000/internal/repository"
	"github.com/hayamij/PY-CameraShop-sub000/internal/usecase"
	"github.com/hayamij/PY-CameraShop-sub000/pkg/db"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting Shop Service...")
	logger.Infof("Log level set to: %s", logLevel.String())

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	// --- Dependency Injection ---
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	cartRepo := repository.NewPostgresCartRepository(database, logger)
	productRepo := repository.NewPostgresProductRepository(database, logger)
	txManager := repository.NewTxManager(database, logger)
	logger.Info("Repositories initialized.")

	placeOrderUC := usecase.NewPlaceOrderUseCase(orderRepo, cartRepo, productRepo, txManager, logger)
	cancelOrderUC := usecase.NewCancelOrderUseCase(orderRepo, productRepo, txManager, logger)
	updateStatusUC := usecase.NewUpdateOrderStatusUseCase(orderRepo, logger)
	shipOrderUC := usecase.NewShipOrderUseCase(orderRepo, logger)
	completeOrderUC := usecase.NewCompleteOrderUseCase(orderRepo, logger)
	deleteOrderUC := usecase.NewDeleteOrderUseCase(orderRepo, logger)
	myOrdersUC := usecase.NewGetMyOrdersUseCase(orderRepo, logger)
	orderDetailUC := usecase.NewGetOrderDetailUseCase(orderRepo, productRepo, logger)
	addToCartUC := usecase.NewAddToCartUseCase(cartRepo, productRepo, logger)
	viewCartUC := usecase.NewViewCartUseCase(cartRepo, productRepo, logger)
	updateCartItemUC := usecase.NewUpdateCartItemUseCase(cartRepo, productRepo, logger)
	removeCartItemUC := usecase.NewRemoveCartItemUseCase(cartRepo, logger)
	logger.Info("Use cases initialized.")

	orderHandler := delivery.NewOrderHandler(
		placeOrderUC, cancelOrderUC, updateStatusUC, shipOrderUC,
		completeOrderUC, deleteOrderUC, myOrdersUC, orderDetailUC, logger,
	)
	cartHandler := delivery.NewCartHandler(addToCartUC, viewCartUC, updateCartItemUC, removeCartItemUC, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()
	router.RedirectTrailingSlash = false

	orderHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	logger.Info("Routes registered.")

	// --- Start Server ---
	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}
