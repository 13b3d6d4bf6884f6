package cart

import (
	"database/sql"

	"go.uber.org/zap"

	"littlelemon/internal/cart/controller"
	"littlelemon/internal/cart/repository"
	"littlelemon/internal/cart/service"
	menurepo "littlelemon/internal/menu/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.CartController {
	cartRepo := repository.NewMySQLCartRepository(db)
	menuRepo := menurepo.NewMySQLMenuItemRepository(db)
	svc := service.NewCartService(cartRepo, menuRepo, logger)
	return controller.NewCartController(svc, logger)
}
