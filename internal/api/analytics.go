package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Veraticus/smart-finance/internal/model"
)

// Stats returns the analytics summary of userID.
func (c *Client) Stats(ctx context.Context, userID int64) (model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, "analytics/stats/"+strconv.FormatInt(userID, 10), nil, nil, &stats); err != nil {
		return model.DashboardStats{}, err
	}
	return stats, nil
}

// Forecast returns the end-of-month projection of userID.
func (c *Client) Forecast(ctx context.Context, userID int64) (model.Forecast, error) {
	var forecast model.Forecast
	if err := c.doJSON(ctx, http.MethodGet, "analytics/forecast/"+strconv.FormatInt(userID, 10), nil, nil, &forecast); err != nil {
		return model.Forecast{}, err
	}
	return forecast, nil
}
