package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"littlelemon/internal/commons"
	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

type TokenParser interface {
	Parse(token string) (uint, error)
}

type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Authenticator resolves the request principal from its bearer token. The user
// and its groups are reloaded on every request so membership changes apply at once.
type Authenticator struct {
	tokens TokenParser
	users  UserLoader
	logger *zap.Logger
}

func NewAuthenticator(tokens TokenParser, users UserLoader, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.authenticate(r)
		if err != nil {
			commons.WriteError(w, uuid.New().String(), err, a.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (domain.Principal, error) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil, errors.NewUnauthorizedError("authentication credentials were not provided")
	}

	userID, err := a.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.FindByID(r.Context(), userID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewUnauthorizedError("user no longer exists")
		}
		return nil, err
	}

	return user, nil
}

// bearerToken accepts both "Bearer <t>" and "Token <t>".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return ""
	}
	return strings.TrimSpace(token)
}
