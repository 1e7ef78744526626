package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/smart-finance/internal/api"
	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/pubsub"
)

// Gateway is the part of the backend the dashboard reads and writes.
type Gateway interface {
	api.TransactionGateway
	api.CategoryGateway
	api.GoalGateway
	api.AnalyticsGateway
	api.ExportGateway
}

// Dashboard owns the view model of the logged-in user.
type Dashboard struct {
	gateway    Gateway
	sessions   api.SessionSource
	state      *pubsub.Cell[ViewModel]
	logger     *slog.Logger
	now        func() time.Time
	generation atomic.Uint64
}

// New creates a dashboard reading the user from sessions.
func New(gateway Gateway, sessions api.SessionSource) *Dashboard {
	return &Dashboard{
		gateway:  gateway,
		sessions: sessions,
		state:    pubsub.NewCell(ViewModel{View: ViewOverview}),
		logger:   slog.Default().With("component", "dashboard"),
		now:      time.Now,
	}
}

// Snapshot returns the current view model.
func (d *Dashboard) Snapshot() ViewModel {
	return d.state.Get()
}

// Subscribe calls fn with the current view model and after every change.
func (d *Dashboard) Subscribe(fn func(ViewModel)) (unsubscribe func()) {
	return d.state.Subscribe(fn)
}

// SetView switches the active view.
func (d *Dashboard) SetView(v View) {
	d.state.Update(func(vm ViewModel) ViewModel {
		vm.View = v
		return vm
	})
}

// Reset drops all loaded data, for example after logout. Loads still in
// flight are discarded when they complete.
func (d *Dashboard) Reset() {
	gen := d.generation.Add(1)
	d.state.Set(ViewModel{View: ViewOverview, Generation: gen})
}

// LoadAll fetches categories, transactions, goals, stats, and forecast for
// userID concurrently and returns the view model once all have completed.
//
// Fetches are independent. A failed fetch is logged and leaves its field as
// it was. Loading is cleared when the transactions fetch completes, whether it
// succeeded or not. Results of a run superseded by a later LoadAll or Reset
// are discarded.
func (d *Dashboard) LoadAll(ctx context.Context, userID int64) ViewModel {
	gen := d.generation.Add(1)
	d.state.Update(func(vm ViewModel) ViewModel {
		vm.Generation = gen
		vm.Loading = true
		return vm
	})
	d.logger.Debug("Loading dashboard", "user_id", userID, "generation", gen)

	var g errgroup.Group

	g.Go(func() error {
		categories, err := d.gateway.ListCategories(ctx)
		d.complete(gen, "categories", err, func(vm *ViewModel) {
			vm.Categories = categories
		})
		return nil
	})

	g.Go(func() error {
		txns, err := d.gateway.ListTransactions(ctx, userID)
		d.complete(gen, "transactions", err, func(vm *ViewModel) {
			if err == nil {
				vm.Transactions = txns
			}
			vm.Loading = false
		})
		return nil
	})

	g.Go(func() error {
		goals, err := d.gateway.ListGoals(ctx)
		d.complete(gen, "goals", err, func(vm *ViewModel) {
			vm.Goals = model.GoalsForUser(goals, userID)
		})
		return nil
	})

	g.Go(func() error {
		stats, err := d.gateway.Stats(ctx, userID)
		d.complete(gen, "stats", err, func(vm *ViewModel) {
			vm.Stats = &stats
		})
		return nil
	})

	g.Go(func() error {
		forecast, err := d.gateway.Forecast(ctx, userID)
		d.complete(gen, "forecast", err, func(vm *ViewModel) {
			vm.Forecast = &forecast
		})
		return nil
	})

	_ = g.Wait()
	return d.Snapshot()
}

// Reload runs LoadAll for the logged-in user.
func (d *Dashboard) Reload(ctx context.Context) (ViewModel, error) {
	sess, err := d.currentSession()
	if err != nil {
		return d.Snapshot(), err
	}
	return d.LoadAll(ctx, sess.UserID), nil
}

// complete applies one fetch result to the view model. On error apply runs
// only for the transactions fetch, which must clear Loading either way.
func (d *Dashboard) complete(gen uint64, resource string, err error, apply func(*ViewModel)) {
	if err != nil {
		d.logger.Error("Failed to load "+resource, "generation", gen, "error", err)
		if resource != "transactions" {
			return
		}
	}

	if d.generation.Load() != gen {
		d.logger.Debug("Discarding stale result", "resource", resource, "generation", gen)
		return
	}

	d.state.Update(func(vm ViewModel) ViewModel {
		if vm.Generation != gen {
			return vm
		}
		apply(&vm)
		return vm
	})
}

func (d *Dashboard) currentSession() (model.Session, error) {
	if d.sessions == nil {
		return model.Session{}, common.ErrNotAuthenticated
	}
	sess, ok := d.sessions.Current()
	if !ok {
		return model.Session{}, common.ErrNotAuthenticated
	}
	return sess, nil
}

func (d *Dashboard) reloadAfter(ctx context.Context, action string, userID int64) {
	d.logger.Debug("Reloading after write", "action", action)
	d.LoadAll(ctx, userID)
}

func wrapWrite(action string, err error) error {
	return fmt.Errorf("%s failed: %w", action, err)
}
