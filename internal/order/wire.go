package order

import (
	"database/sql"

	"go.uber.org/zap"

	cartrepo "littlelemon/internal/cart/repository"
	"littlelemon/internal/config"
	"littlelemon/internal/order/controller"
	orderrepo "littlelemon/internal/order/repository"
	"littlelemon/internal/order/service"
	"littlelemon/internal/order/usecase"
	userrepo "littlelemon/internal/user/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	cartRepo := cartrepo.NewMySQLCartRepository(db)
	userRepo := userrepo.NewMySQLUserRepository(db)

	checkoutSvc := service.NewCheckoutService(
		db,
		cartRepo,
		orderRepo,
		orderItemRepo,
		logger,
		cfg.Order.CheckoutTxTimeout,
	)

	placeOrder := usecase.NewPlaceOrderUseCase(checkoutSvc, logger, cfg.Order.MaxRetryAttempts)
	orderSvc := service.NewOrderService(db, orderRepo, orderItemRepo, userRepo, logger)

	return controller.NewOrderController(placeOrder, orderSvc, logger)
}
