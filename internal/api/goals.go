package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Veraticus/smart-finance/internal/model"
)

// ListGoals returns every goal of every user. Callers filter by user.
func (c *Client) ListGoals(ctx context.Context) ([]model.Goal, error) {
	var goals []model.Goal
	if err := c.doJSON(ctx, http.MethodGet, "goals", nil, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal returns one goal.
func (c *Client) GetGoal(ctx context.Context, id string) (model.Goal, error) {
	var goal model.Goal
	if err := c.doJSON(ctx, http.MethodGet, "goals/"+url.PathEscape(id), nil, nil, &goal); err != nil {
		return model.Goal{}, err
	}
	return goal, nil
}

// CreateGoal creates goal and returns the stored copy.
func (c *Client) CreateGoal(ctx context.Context, goal model.Goal) (model.Goal, error) {
	var created model.Goal
	if err := c.doJSON(ctx, http.MethodPost, "goals", nil, goal, &created); err != nil {
		return model.Goal{}, err
	}
	return created, nil
}

// UpdateGoal replaces the goal with the given id.
func (c *Client) UpdateGoal(ctx context.Context, id string, goal model.Goal) (model.Goal, error) {
	var updated model.Goal
	if err := c.doJSON(ctx, http.MethodPut, "goals/"+url.PathEscape(id), nil, goal, &updated); err != nil {
		return model.Goal{}, err
	}
	return updated, nil
}

// DeleteGoal removes the goal with the given id.
func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "goals/"+url.PathEscape(id), nil, nil, nil)
}
