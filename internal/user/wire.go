package user

import (
	"database/sql"

	"go.uber.org/zap"

	"littlelemon/internal/auth"
	"littlelemon/internal/config"
	"littlelemon/internal/user/controller"
	"littlelemon/internal/user/repository"
	"littlelemon/internal/user/service"
)

// Module bundles the account endpoints with the pieces other modules and
// startup need: the request authenticator and the admin bootstrap.
type Module struct {
	Auth          *controller.AuthController
	Groups        *controller.GroupController
	Authenticator *auth.Authenticator
	Accounts      *service.AuthService
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	userRepo := repository.NewMySQLUserRepository(db)
	groupRepo := repository.NewMySQLGroupRepository(db)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	accounts := service.NewAuthService(userRepo, tokens, logger)
	groups := service.NewGroupService(groupRepo, userRepo, logger)

	return &Module{
		Auth:          controller.NewAuthController(accounts, logger),
		Groups:        controller.NewGroupController(groups, logger),
		Authenticator: auth.NewAuthenticator(tokens, userRepo, logger),
		Accounts:      accounts,
	}
}
