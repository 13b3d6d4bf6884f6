package menu

import (
	"database/sql"

	"go.uber.org/zap"

	"littlelemon/internal/menu/controller"
	"littlelemon/internal/menu/repository"
	"littlelemon/internal/menu/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.MenuController {
	repo := repository.NewMySQLMenuItemRepository(db)
	svc := service.NewMenuService(repo, logger)
	return controller.NewMenuController(svc, logger)
}
