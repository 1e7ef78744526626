package api

import (
	"context"
	"io"

	"github.com/Veraticus/smart-finance/internal/model"
)

// TransactionGateway manages transactions.
type TransactionGateway interface {
	ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id string) (model.Transaction, error)
	CreateTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, txn model.Transaction) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// CategoryGateway reads the category lookup table.
type CategoryGateway interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (model.Category, error)
}

// GoalGateway manages spending goals.
type GoalGateway interface {
	ListGoals(ctx context.Context) ([]model.Goal, error)
	GetGoal(ctx context.Context, id string) (model.Goal, error)
	CreateGoal(ctx context.Context, goal model.Goal) (model.Goal, error)
	UpdateGoal(ctx context.Context, id string, goal model.Goal) (model.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

// AnalyticsGateway reads backend-computed analytics.
type AnalyticsGateway interface {
	Stats(ctx context.Context, userID int64) (model.DashboardStats, error)
	Forecast(ctx context.Context, userID int64) (model.Forecast, error)
}

// OCRGateway extracts receipts.
type OCRGateway interface {
	ScanFile(ctx context.Context, filename string, r io.Reader) (model.OcrResult, error)
	ScanText(ctx context.Context, text string) (model.OcrResult, error)
}

// ExportGateway downloads reports.
type ExportGateway interface {
	ExportPDF(ctx context.Context, userID int64) (io.ReadCloser, error)
}

// Gateway is the resource surface of the backend. Client also serves
// session.AuthGateway for login and registration.
type Gateway interface {
	TransactionGateway
	CategoryGateway
	GoalGateway
	AnalyticsGateway
	OCRGateway
	ExportGateway
}

// Ensure Client implements Gateway interface.
var _ Gateway = (*Client)(nil)
