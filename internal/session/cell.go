package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/pubsub"
)

// Cell is the single source of truth for who is logged in. Every change is
// written through to the durable Store before it becomes visible.
type Cell struct {
	store   Store
	value   *pubsub.Cell[*model.Session]
	logger  *slog.Logger
	writeMu sync.Mutex
}

// NewCell creates a cell seeded from store. An empty slot, a failed read, or
// a value that does not decode to a usable session all seed "logged out".
func NewCell(ctx context.Context, store Store) *Cell {
	logger := slog.Default().With("component", "session")
	c := &Cell{
		store:  store,
		logger: logger,
		value:  pubsub.NewCell[*model.Session](nil),
	}

	if s, ok := c.load(ctx); ok {
		c.value.Set(&s)
		logger.Debug("Restored session", "user_id", s.UserID)
	}
	return c
}

func (c *Cell) load(ctx context.Context) (model.Session, bool) {
	data, ok, err := c.store.Read(ctx)
	if err != nil {
		c.logger.Warn("Failed to read stored session, starting logged out", "error", err)
		return model.Session{}, false
	}
	if !ok {
		return model.Session{}, false
	}

	s, err := decode(data)
	if err != nil {
		c.logger.Warn("Ignoring unreadable stored session", "error", err)
		return model.Session{}, false
	}
	return s, true
}

func decode(data []byte) (model.Session, error) {
	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Session{}, err
	}
	if s.Token == "" {
		return model.Session{}, fmt.Errorf("stored session has no token")
	}
	return s, nil
}

// Current returns the current session, if any.
func (c *Cell) Current() (model.Session, bool) {
	s := c.value.Get()
	if s == nil {
		return model.Session{}, false
	}
	return *s, true
}

// Set makes s the current session, replacing any previous one. The session is
// persisted first; if that fails the current session is left unchanged.
func (c *Cell) Set(ctx context.Context, s model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.store.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	c.value.Set(&s)
	return nil
}

// Clear removes the current session and its durable copy.
func (c *Cell) Clear(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove stored session: %w", err)
	}
	c.value.Set(nil)
	return nil
}

// Subscribe calls fn with the current session (nil when logged out) and then
// with every change until the returned function is called.
func (c *Cell) Subscribe(fn func(*model.Session)) (unsubscribe func()) {
	return c.value.Subscribe(func(s *model.Session) {
		if s == nil {
			fn(nil)
			return
		}
		cp := *s
		fn(&cp)
	})
}
