package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Veraticus/smart-finance/internal/model"
)

// ListTransactions returns the transactions of userID.
func (c *Client) ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	query := url.Values{"userId": []string{strconv.FormatInt(userID, 10)}}

	var txns []model.Transaction
	if err := c.doJSON(ctx, http.MethodGet, "transactions", query, nil, &txns); err != nil {
		return nil, err
	}
	// Older backends ignore the userId filter.
	return model.TransactionsForUser(txns, userID), nil
}

// GetTransaction returns one transaction.
func (c *Client) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	var txn model.Transaction
	if err := c.doJSON(ctx, http.MethodGet, "transactions/"+url.PathEscape(id), nil, nil, &txn); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// CreateTransaction creates txn and returns the stored copy.
func (c *Client) CreateTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	var created model.Transaction
	if err := c.doJSON(ctx, http.MethodPost, "transactions", nil, txn, &created); err != nil {
		return model.Transaction{}, err
	}
	return created, nil
}

// UpdateTransaction replaces the transaction with the given id.
func (c *Client) UpdateTransaction(ctx context.Context, id string, txn model.Transaction) (model.Transaction, error) {
	var updated model.Transaction
	if err := c.doJSON(ctx, http.MethodPut, "transactions/"+url.PathEscape(id), nil, txn, &updated); err != nil {
		return model.Transaction{}, err
	}
	return updated, nil
}

// DeleteTransaction removes the transaction with the given id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "transactions/"+url.PathEscape(id), nil, nil, nil)
}
