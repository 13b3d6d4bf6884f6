package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	cartcontroller "littlelemon/internal/cart/controller"
	"littlelemon/internal/commons"
	"littlelemon/internal/domain"
	"littlelemon/internal/infrastructure/logger"
	menucontroller "littlelemon/internal/menu/controller"
	ordercontroller "littlelemon/internal/order/controller"
	usercontroller "littlelemon/internal/user/controller"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Controllers struct {
	Menu   *menucontroller.MenuController
	Cart   *cartcontroller.CartController
	Order  *ordercontroller.OrderController
	Auth   *usercontroller.AuthController
	Groups *usercontroller.GroupController
}

// NewRouter mounts the public auth endpoints, the health check, and the
// authenticated /api tree.
func NewRouter(ctrls Controllers, authenticate func(http.Handler) http.Handler, db Pinger, zapLogger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger(zapLogger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler(db, zapLogger))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/users", ctrls.Auth.Register)
		r.Post("/token/login", ctrls.Auth.Login)
		r.With(authenticate).Get("/users/me", ctrls.Auth.Me)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/menu-items", func(r chi.Router) {
			r.Get("/", ctrls.Menu.ListItems)
			r.Post("/", ctrls.Menu.CreateItem)
			r.Get("/{id}", ctrls.Menu.GetItem)
			r.Patch("/{id}", ctrls.Menu.UpdateItem)
			r.Delete("/{id}", ctrls.Menu.DeleteItem)
		})

		mountGroup(r, "/groups/manager/users", domain.RoleManager, ctrls.Groups)
		mountGroup(r, "/groups/delivery-crew/users", domain.RoleDeliveryCrew, ctrls.Groups)

		r.Route("/cart/menu-items", func(r chi.Router) {
			r.Get("/", ctrls.Cart.ListItems)
			r.Post("/", ctrls.Cart.AddItem)
			r.Delete("/", ctrls.Cart.Clear)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ctrls.Order.ListOrders)
			r.Post("/", ctrls.Order.PlaceOrder)
			r.Get("/{id}", ctrls.Order.GetOrder)
			r.Patch("/{id}", ctrls.Order.UpdateOrder)
			r.Put("/{id}", ctrls.Order.UpdateOrder)
			r.Delete("/{id}", ctrls.Order.DeleteOrder)
		})
	})

	return r
}

func mountGroup(r chi.Router, path string, group string, ctrl *usercontroller.GroupController) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", ctrl.ListMembers(group))
		r.Post("/", ctrl.AddMember(group))
		r.Delete("/{userId}", ctrl.RemoveMember(group))
	})
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			commons.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
			return
		}

		commons.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
