package api

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Veraticus/smart-finance/internal/model"
)

// MockCall records the parameters of one gateway call.
type MockCall struct {
	Method string
	Args   []any
}

// MockGateway is a mock implementation of Gateway for testing.
// It is safe for concurrent use.
type MockGateway struct {
	// Functions that can be set by tests to control behavior
	LoginFn             func(ctx context.Context, req model.LoginRequest) (model.Session, error)
	RegisterFn          func(ctx context.Context, req model.RegisterRequest) (model.Session, error)
	ListTransactionsFn  func(ctx context.Context, userID int64) ([]model.Transaction, error)
	GetTransactionFn    func(ctx context.Context, id string) (model.Transaction, error)
	CreateTransactionFn func(ctx context.Context, txn model.Transaction) (model.Transaction, error)
	UpdateTransactionFn func(ctx context.Context, id string, txn model.Transaction) (model.Transaction, error)
	DeleteTransactionFn func(ctx context.Context, id string) error
	ListCategoriesFn    func(ctx context.Context) ([]model.Category, error)
	GetCategoryFn       func(ctx context.Context, id string) (model.Category, error)
	ListGoalsFn         func(ctx context.Context) ([]model.Goal, error)
	GetGoalFn           func(ctx context.Context, id string) (model.Goal, error)
	CreateGoalFn        func(ctx context.Context, goal model.Goal) (model.Goal, error)
	UpdateGoalFn        func(ctx context.Context, id string, goal model.Goal) (model.Goal, error)
	DeleteGoalFn        func(ctx context.Context, id string) error
	StatsFn             func(ctx context.Context, userID int64) (model.DashboardStats, error)
	ForecastFn          func(ctx context.Context, userID int64) (model.Forecast, error)
	ScanFileFn          func(ctx context.Context, filename string, r io.Reader) (model.OcrResult, error)
	ScanTextFn          func(ctx context.Context, text string) (model.OcrResult, error)
	ExportPDFFn         func(ctx context.Context, userID int64) (io.ReadCloser, error)

	// Call tracking
	calls []MockCall
	mu    sync.Mutex
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) record(method string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Args: args})
}

// Calls returns a copy of every recorded call in order.
func (m *MockGateway) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns how many times method was called.
func (m *MockGateway) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// Reset clears all call tracking.
func (m *MockGateway) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Login implements session.AuthGateway.Login.
func (m *MockGateway) Login(ctx context.Context, req model.LoginRequest) (model.Session, error) {
	m.record("Login", req)
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return model.Session{Token: "mock-token", UserID: 1, Email: req.Email}, nil
}

// Register implements session.AuthGateway.Register.
func (m *MockGateway) Register(ctx context.Context, req model.RegisterRequest) (model.Session, error) {
	m.record("Register", req)
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return model.Session{Token: "mock-token", UserID: 1, Name: req.Name, Email: req.Email, Currency: req.Currency}, nil
}

// ListTransactions implements TransactionGateway.ListTransactions.
func (m *MockGateway) ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	m.record("ListTransactions", userID)
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, userID)
	}
	return []model.Transaction{}, nil
}

// GetTransaction implements TransactionGateway.GetTransaction.
func (m *MockGateway) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	m.record("GetTransaction", id)
	if m.GetTransactionFn != nil {
		return m.GetTransactionFn(ctx, id)
	}
	return model.Transaction{ID: id}, nil
}

// CreateTransaction implements TransactionGateway.CreateTransaction.
func (m *MockGateway) CreateTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	m.record("CreateTransaction", txn)
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(ctx, txn)
	}
	txn.ID = uuid.NewString()
	return txn, nil
}

// UpdateTransaction implements TransactionGateway.UpdateTransaction.
func (m *MockGateway) UpdateTransaction(ctx context.Context, id string, txn model.Transaction) (model.Transaction, error) {
	m.record("UpdateTransaction", id, txn)
	if m.UpdateTransactionFn != nil {
		return m.UpdateTransactionFn(ctx, id, txn)
	}
	txn.ID = id
	return txn, nil
}

// DeleteTransaction implements TransactionGateway.DeleteTransaction.
func (m *MockGateway) DeleteTransaction(ctx context.Context, id string) error {
	m.record("DeleteTransaction", id)
	if m.DeleteTransactionFn != nil {
		return m.DeleteTransactionFn(ctx, id)
	}
	return nil
}

// ListCategories implements CategoryGateway.ListCategories.
func (m *MockGateway) ListCategories(ctx context.Context) ([]model.Category, error) {
	m.record("ListCategories")
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return []model.Category{}, nil
}

// GetCategory implements CategoryGateway.GetCategory.
func (m *MockGateway) GetCategory(ctx context.Context, id string) (model.Category, error) {
	m.record("GetCategory", id)
	if m.GetCategoryFn != nil {
		return m.GetCategoryFn(ctx, id)
	}
	return model.Category{ID: id}, nil
}

// ListGoals implements GoalGateway.ListGoals.
func (m *MockGateway) ListGoals(ctx context.Context) ([]model.Goal, error) {
	m.record("ListGoals")
	if m.ListGoalsFn != nil {
		return m.ListGoalsFn(ctx)
	}
	return []model.Goal{}, nil
}

// GetGoal implements GoalGateway.GetGoal.
func (m *MockGateway) GetGoal(ctx context.Context, id string) (model.Goal, error) {
	m.record("GetGoal", id)
	if m.GetGoalFn != nil {
		return m.GetGoalFn(ctx, id)
	}
	return model.Goal{ID: id}, nil
}

// CreateGoal implements GoalGateway.CreateGoal.
func (m *MockGateway) CreateGoal(ctx context.Context, goal model.Goal) (model.Goal, error) {
	m.record("CreateGoal", goal)
	if m.CreateGoalFn != nil {
		return m.CreateGoalFn(ctx, goal)
	}
	goal.ID = uuid.NewString()
	return goal, nil
}

// UpdateGoal implements GoalGateway.UpdateGoal.
func (m *MockGateway) UpdateGoal(ctx context.Context, id string, goal model.Goal) (model.Goal, error) {
	m.record("UpdateGoal", id, goal)
	if m.UpdateGoalFn != nil {
		return m.UpdateGoalFn(ctx, id, goal)
	}
	goal.ID = id
	return goal, nil
}

// DeleteGoal implements GoalGateway.DeleteGoal.
func (m *MockGateway) DeleteGoal(ctx context.Context, id string) error {
	m.record("DeleteGoal", id)
	if m.DeleteGoalFn != nil {
		return m.DeleteGoalFn(ctx, id)
	}
	return nil
}

// Stats implements AnalyticsGateway.Stats.
func (m *MockGateway) Stats(ctx context.Context, userID int64) (model.DashboardStats, error) {
	m.record("Stats", userID)
	if m.StatsFn != nil {
		return m.StatsFn(ctx, userID)
	}
	return model.DashboardStats{}, nil
}

// Forecast implements AnalyticsGateway.Forecast.
func (m *MockGateway) Forecast(ctx context.Context, userID int64) (model.Forecast, error) {
	m.record("Forecast", userID)
	if m.ForecastFn != nil {
		return m.ForecastFn(ctx, userID)
	}
	return model.Forecast{}, nil
}

// ScanFile implements OCRGateway.ScanFile.
func (m *MockGateway) ScanFile(ctx context.Context, filename string, r io.Reader) (model.OcrResult, error) {
	m.record("ScanFile", filename)
	if m.ScanFileFn != nil {
		return m.ScanFileFn(ctx, filename, r)
	}
	return model.OcrResult{}, nil
}

// ScanText implements OCRGateway.ScanText.
func (m *MockGateway) ScanText(ctx context.Context, text string) (model.OcrResult, error) {
	m.record("ScanText", text)
	if m.ScanTextFn != nil {
		return m.ScanTextFn(ctx, text)
	}
	return model.OcrResult{RawText: text}, nil
}

// ExportPDF implements ExportGateway.ExportPDF.
func (m *MockGateway) ExportPDF(ctx context.Context, userID int64) (io.ReadCloser, error) {
	m.record("ExportPDF", userID)
	if m.ExportPDFFn != nil {
		return m.ExportPDFFn(ctx, userID)
	}
	return io.NopCloser(strings.NewReader("%PDF-1.4\n")), nil
}

// Ensure MockGateway implements Gateway interface.
var _ Gateway = (*MockGateway)(nil)
