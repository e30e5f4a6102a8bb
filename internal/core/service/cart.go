package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
)

var _ port.CartMutator = (*CartService)(nil)
var _ port.CartReader = (*CartService)(nil)

// CartService owns the session's cart line items. Every mutation is
// written through to the repository before it returns; totals are
// recomputed from current state on every read, never cached.
//
// The mutex only serializes requests of the single active session;
// there is no cross-process coordination.
type CartService struct {
	mu    sync.Mutex
	items []domain.CartItem
	repo  port.CartRepository
	sink  port.EventSink
}

// NewCart initializes the cart from the persisted state. A missing
// or unreadable cart starts empty with a logged warning; it is not
// a fatal condition.
func NewCart(
	ctx context.Context, repo port.CartRepository, sink port.EventSink,
) (*CartService, error) {
	const op = "CartService.New"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := repo.ReadItems(ctx)
	if err != nil {
		slog.With("op", op).Warn("starting with an empty cart", "err", err)
		items = nil
	}

	return &CartService{items: items, repo: repo, sink: sink}, nil
}

// mustInit guards against reads or writes through a zero-value
// CartService, which is a programmer error.
func (s *CartService) mustInit() {
	if s.repo == nil {
		panic("cart service used before initialization")
	}
}

func (s *CartService) Add(
	ctx context.Context, p domain.Product, quantity int, size, color string,
) (domain.AddOutcome, error) {
	const op = "CartService.Add"
	s.mustInit()

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if quantity <= 0 {
		return "", fmt.Errorf("%s: %w: %d", op, domain.ErrInvalidQuantity, quantity)
	}
	if !p.HasSize(size) {
		return "", fmt.Errorf("%s: %w: %q", op, domain.ErrSizeNotOffered, size)
	}
	if !p.HasColor(color) {
		return "", fmt.Errorf("%s: %w: %q", op, domain.ErrColorNotOffered, color)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.LineKey{ProductID: p.ID, Size: size, Color: color}
	outcome := domain.OutcomeAdded
	next := slices.Clone(s.items)
	if i := lineIndex(next, key); i >= 0 {
		next[i].Quantity += quantity
		outcome = domain.OutcomeUpdated
	} else {
		next = append(next, domain.CartItem{
			Product: p, Quantity: quantity, Size: size, Color: color,
		})
	}

	if err := s.persist(ctx, next); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.items = next

	kind := domain.EventItemAdded
	if outcome == domain.OutcomeUpdated {
		kind = domain.EventQuantityUpdated
	}
	s.emit(ctx, kind, p.ID, quantity)

	return outcome, nil
}

// Remove deletes the matching line item. A key without a matching
// line is a no-op, not an error.
func (s *CartService) Remove(ctx context.Context, key domain.LineKey) error {
	const op = "CartService.Remove"
	s.mustInit()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := lineIndex(s.items, key)
	if i < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.items), i, i+1)

	if err := s.persist(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.items = next
	s.emit(ctx, domain.EventItemRemoved, key.ProductID, 0)
	return nil
}

// SetQuantity replaces the line item's quantity. A quantity of zero
// or less behaves exactly as Remove.
func (s *CartService) SetQuantity(
	ctx context.Context, key domain.LineKey, quantity int,
) error {
	const op = "CartService.SetQuantity"
	s.mustInit()

	if quantity <= 0 {
		return s.Remove(ctx, key)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := lineIndex(s.items, key)
	if i < 0 {
		return nil
	}
	next := slices.Clone(s.items)
	next[i].Quantity = quantity

	if err := s.persist(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.items = next
	s.emit(ctx, domain.EventQuantityUpdated, key.ProductID, quantity)
	return nil
}

func (s *CartService) Clear(ctx context.Context) error {
	const op = "CartService.Clear"
	s.mustInit()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.items = nil
	s.emit(ctx, domain.EventCartCleared, "", 0)
	return nil
}

func (s *CartService) Items() []domain.CartItem {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *CartService) Total() decimal.Decimal {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *CartService) ItemCount() int {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

func lineIndex(items []domain.CartItem, key domain.LineKey) int {
	for i, item := range items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// persist writes the staged line items. Callers hold s.mu and only
// commit the staged state to s.items once the write succeeds, so a
// failed write leaves memory and disk agreeing on the prior state.
func (s *CartService) persist(ctx context.Context, items []domain.CartItem) error {
	return s.repo.WriteItems(ctx, items)
}

// emit records the user-visible confirmation event. Journal failures
// never fail the mutation itself.
func (s *CartService) emit(
	ctx context.Context, kind domain.EventKind, productID string, quantity int,
) {
	if s.sink == nil {
		return
	}
	evt := domain.SessionEvent{
		Kind:      kind,
		ProductID: productID,
		Quantity:  quantity,
		At:        time.Now(),
	}
	if err := s.sink.Record(ctx, evt); err != nil {
		slog.Warn("failed to record session event", "kind", kind, "err", err)
	}
}
