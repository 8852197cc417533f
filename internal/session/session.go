package session

import (
	"context"
	"sync"

	"github.com/pantrylab/inventory-service/internal/inventory"
	"github.com/pantrylab/inventory-service/internal/inventory/dto"
	"github.com/pantrylab/inventory-service/internal/model"
	"github.com/pantrylab/inventory-service/internal/search"
	"github.com/pantrylab/inventory-service/internal/selection"
	"github.com/pantrylab/inventory-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Session is the single-user in-memory view over the inventory: the
// last full snapshot, the filtered view, the selection flags and the
// single pending-conflict slot. Every mutating call runs to completion
// under the lock, store write plus full re-list, before the next one
// starts.
type Session struct {
	mu       sync.Mutex
	uc       inventory.UseCase
	logger   logger.ZapLogger
	items    []model.InventoryItem
	filtered []model.InventoryItem
	tracker  *selection.Tracker
	pending  *dto.PendingConflict
	onUpdate func()
}

// View is the read surface handed to the presentation layer after
// every call.
type View struct {
	Items           []model.InventoryItem `json:"items"`
	Filtered        []model.InventoryItem `json:"filtered"`
	Selection       map[string]bool       `json:"selection"`
	SelectedTotal   decimal.Decimal       `json:"selected_total"`
	AllSelected     bool                  `json:"all_selected"`
	SomeSelected    bool                  `json:"some_selected"`
	PendingConflict *dto.PendingConflict  `json:"pending_conflict,omitempty"`
}

func NewSession(uc inventory.UseCase, log logger.ZapLogger) *Session {
	return &Session{
		uc:      uc,
		logger:  log,
		tracker: selection.NewTracker(),
	}
}

// SetOnUpdate registers the re-render trigger invoked after every
// successful state change.
func (s *Session) SetOnUpdate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// Refresh re-reads the full collection, merges new ids into the
// selection and resets the filtered view to the full snapshot.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	items, err := s.uc.ListItems(ctx)
	if err != nil {
		// The in-memory view goes stale; the next action retries the
		// re-list implicitly.
		return err
	}
	s.items = items
	s.filtered = items
	s.tracker.Reconcile(items)
	s.notifyLocked()
	return nil
}

// AddItem reconciles an add. While a price conflict is awaiting a
// decision any further add is rejected.
func (s *Session) AddItem(ctx context.Context, name, price string) (*dto.AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return nil, inventory.ErrConflictPending
	}

	res, err := s.uc.AddItem(ctx, &dto.AddItemInput{Name: name, Price: price})
	if err != nil {
		return nil, err
	}

	if res.Outcome == dto.AddOutcomeConflictPending {
		s.pending = res.Conflict
		s.logger.Debug("price conflict pending",
			zap.String("name", res.Conflict.Name),
			zap.String("old_price", res.Conflict.OldPrice.String()),
			zap.String("new_price", res.Conflict.NewPrice.String()),
		)
	}

	if err := s.refreshLocked(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// SearchItems filters the last snapshot on demand.
func (s *Session) SearchItems(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtered = search.Filter(term, s.items)
	s.notifyLocked()
}

func (s *Session) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Toggle(id)
	s.notifyLocked()
}

func (s *Session) SelectAllToggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.ToggleAll(s.filtered)
	s.notifyLocked()
}

func (s *Session) IncrementQuantity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.uc.IncrementQuantity(ctx, id); err != nil {
		return err
	}
	return s.refreshLocked(ctx)
}

func (s *Session) DecrementQuantity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.uc.DecrementQuantity(ctx, id); err != nil {
		return err
	}
	return s.refreshLocked(ctx)
}

func (s *Session) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.uc.RemoveItem(ctx, id); err != nil {
		return err
	}
	return s.refreshLocked(ctx)
}

// ConfirmPriceConflict applies the pending conflict's new price. The
// slot is cleared only after the store write succeeds.
func (s *Session) ConfirmPriceConflict(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return inventory.ErrNoPendingConflict
	}
	if err := s.uc.ConfirmConflict(ctx, s.pending); err != nil {
		return err
	}
	s.pending = nil
	return s.refreshLocked(ctx)
}

// CancelPriceConflict keeps the stored price but still applies the
// resolved quantity.
func (s *Session) CancelPriceConflict(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return inventory.ErrNoPendingConflict
	}
	if err := s.uc.CancelConflict(ctx, s.pending); err != nil {
		return err
	}
	s.pending = nil
	return s.refreshLocked(ctx)
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending *dto.PendingConflict
	if s.pending != nil {
		cp := *s.pending
		pending = &cp
	}

	return View{
		Items:           append([]model.InventoryItem{}, s.items...),
		Filtered:        append([]model.InventoryItem{}, s.filtered...),
		Selection:       s.tracker.Snapshot(),
		SelectedTotal:   selection.SelectedTotal(s.filtered, s.tracker),
		AllSelected:     s.tracker.AllSelected(s.filtered),
		SomeSelected:    s.tracker.SomeSelected(s.filtered),
		PendingConflict: pending,
	}
}

func (s *Session) notifyLocked() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
