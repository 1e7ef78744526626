package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/model"
)

// DefaultCurrency is used when registration does not name one.
const DefaultCurrency = "TND"

const minPasswordLength = 6

// AuthGateway is the backend's authentication endpoint group.
type AuthGateway interface {
	Login(ctx context.Context, req model.LoginRequest) (model.Session, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.Session, error)
}

// Service runs the login, registration, and logout flows against a Cell.
type Service struct {
	gateway AuthGateway
	cell    *Cell
	logger  *slog.Logger
}

// NewService creates a session service.
func NewService(gateway AuthGateway, cell *Cell) *Service {
	return &Service{
		gateway: gateway,
		cell:    cell,
		logger:  slog.Default().With("component", "session"),
	}
}

// Login authenticates with email and password and makes the result current.
func (s *Service) Login(ctx context.Context, email, password string) (model.Session, error) {
	req := model.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if req.Email == "" {
		return model.Session{}, common.Invalid("email", "is required")
	}
	if req.Password == "" {
		return model.Session{}, common.Invalid("password", "is required")
	}

	sess, err := s.gateway.Login(ctx, req)
	if err != nil {
		s.logger.Error("Login failed", "email", req.Email, "error", err)
		return model.Session{}, fmt.Errorf("login failed: %w", err)
	}
	return s.adopt(ctx, sess)
}

// Register creates an account and makes the resulting session current.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.Session, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}

	switch {
	case req.Name == "":
		return model.Session{}, common.Invalid("name", "is required")
	case req.Email == "":
		return model.Session{}, common.Invalid("email", "is required")
	case len(req.Password) < minPasswordLength:
		return model.Session{}, common.Invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	sess, err := s.gateway.Register(ctx, req)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Email, "error", err)
		return model.Session{}, fmt.Errorf("registration failed: %w", err)
	}
	return s.adopt(ctx, sess)
}

// Logout forgets the current session. It is the only way a session ends.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.cell.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("Logged out")
	return nil
}

func (s *Service) adopt(ctx context.Context, sess model.Session) (model.Session, error) {
	if sess.Token == "" {
		return model.Session{}, fmt.Errorf("%w: server returned no token", common.ErrRequestFailed)
	}
	if err := s.cell.Set(ctx, sess); err != nil {
		return model.Session{}, err
	}
	s.logger.Info("Logged in", "user_id", sess.UserID, "email", sess.Email)
	return sess, nil
}
