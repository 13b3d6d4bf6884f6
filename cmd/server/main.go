package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"littlelemon/internal/cart"
	"littlelemon/internal/config"
	"littlelemon/internal/infrastructure/logger"
	"littlelemon/internal/infrastructure/mysql"
	"littlelemon/internal/menu"
	"littlelemon/internal/order"
	"littlelemon/internal/server"
	"littlelemon/internal/user"
)

func main() {
	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Database.Migrate {
		if err := mysql.RunMigrations(mysql.DSN(cfg.Database)); err != nil {
			zapLogger.Fatal("applying migrations", zap.Error(err))
		}
		zapLogger.Info("migrations applied")
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userModule := user.NewModule(db, cfg, zapLogger)

	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if err := userModule.Accounts.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
			zapLogger.Fatal("bootstrapping admin user", zap.Error(err))
		}
	}

	router := server.NewRouter(server.Controllers{
		Menu:   menu.NewModule(db, zapLogger),
		Cart:   cart.NewModule(db, zapLogger),
		Order:  order.NewModule(db, cfg, zapLogger),
		Auth:   userModule.Auth,
		Groups: userModule.Groups,
	}, userModule.Authenticator.Middleware, db, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}
}
