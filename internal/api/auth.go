package api

import (
	"context"
	"net/http"

	"github.com/Veraticus/smart-finance/internal/model"
)

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.Session, error) {
	var sess model.Session
	if err := c.doJSON(ctx, http.MethodPost, "auth/login", nil, req, &sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.Session, error) {
	var sess model.Session
	if err := c.doJSON(ctx, http.MethodPost, "auth/register", nil, req, &sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}
