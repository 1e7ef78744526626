package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Veraticus/smart-finance/internal/model"
)

// ListCategories returns every category.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.doJSON(ctx, http.MethodGet, "categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns one category.
func (c *Client) GetCategory(ctx context.Context, id string) (model.Category, error) {
	var category model.Category
	if err := c.doJSON(ctx, http.MethodGet, "categories/"+url.PathEscape(id), nil, nil, &category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}
