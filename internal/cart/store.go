// Package cart holds shopper carts keyed by an opaque id and snapshots them
// to disk on every mutation. Writes are last-write-wins; there is no
// cross-process consistency guarantee.
package cart

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

const (
	snapshotFile           = "carts.json"
	defaultNotificationTTL = 3 * time.Second
	checkoutDelay          = 500 * time.Millisecond
)

// ErrCartEmpty is returned when checkout is attempted on a cart with no items.
var ErrCartEmpty = stderrors.New("cart is empty")

type Store struct {
	mu        sync.Mutex
	carts     map[string]*domain.Cart
	path      string
	notifyTTL time.Duration
	logger    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNotificationTTL overrides how long transient notifications live.
func WithNotificationTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.notifyTTL = ttl
	}
}

// NewStore creates a cart store rooted at dataDir, loading the previous
// snapshot if one exists.
func NewStore(dataDir string, logger *zap.Logger, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	s := &Store{
		carts:     make(map[string]*domain.Cart),
		path:      filepath.Join(dataDir, snapshotFile),
		notifyTTL: defaultNotificationTTL,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Create makes a fresh empty cart with a timestamp-derived id.
func (s *Store) Create() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cart := &domain.Cart{
		ID:        fmt.Sprintf("cart_%d_%s", now.UnixMilli(), uuid.NewString()[:8]),
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.carts[cart.ID] = cart
	s.persist()
	return snapshot(cart)
}

// Get returns the cart with the given id.
func (s *Store) Get(id string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: id}
	}
	return snapshot(cart), nil
}

// AddItem adds one unit of the product to the cart, incrementing the
// quantity if the product is already present. A transient notification is
// set and cleared after three seconds.
func (s *Store) AddItem(id string, item domain.CartItem) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: id}
	}

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}
	s.touch(cart, fmt.Sprintf("%s added to cart", item.Title))
	return snapshot(cart), nil
}

// SetQuantity sets the quantity of a cart item. Zero or less removes the
// item entirely.
func (s *Store) SetQuantity(id, productID string, quantity int) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: id}
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		if quantity < 1 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
		s.touch(cart, "")
		return snapshot(cart), nil
	}
	return nil, &errors.ErrNotFound{Resource: "cart item", ID: productID}
}

// RemoveItem removes the product from the cart regardless of quantity.
func (s *Store) RemoveItem(id, productID string) (*domain.Cart, error) {
	return s.SetQuantity(id, productID, 0)
}

// Checkout is a stub: it simulates a processing delay, empties the cart and
// returns a placeholder confirmation. There is no payment integration.
func (s *Store) Checkout(ctx context.Context, id string) (string, error) {
	// Simulated processing time, outside the lock so other carts keep moving.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(checkoutDelay):
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[id]
	if !ok {
		return "", &errors.ErrNotFound{Resource: "cart", ID: id}
	}
	if len(cart.Items) == 0 {
		return "", ErrCartEmpty
	}

	total := cart.Total
	cart.Items = []domain.CartItem{}
	s.touch(cart, "")
	return fmt.Sprintf("Checkout is not available in this demo. Your order total was %.2f.", total), nil
}

// touch recomputes the total, stamps the cart, persists the snapshot and
// arms the notification expiry.
func (s *Store) touch(cart *domain.Cart, notification string) {
	cart.RecomputeTotal()
	cart.UpdatedAt = time.Now()
	cart.Notification = notification
	s.persist()

	if notification == "" {
		return
	}
	id := cart.ID
	stamp := cart.UpdatedAt
	time.AfterFunc(s.notifyTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		c, ok := s.carts[id]
		if !ok || !c.UpdatedAt.Equal(stamp) {
			return // a newer mutation owns the notification now
		}
		c.Notification = ""
		s.persist()
	})
}

func (s *Store) persist() {
	data, err := json.MarshalIndent(s.carts, "", "  ")
	if err != nil {
		s.logger.Error("Failed to marshal cart snapshot", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error("Failed to write cart snapshot", zap.Error(err), zap.String("path", s.path))
	}
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cart snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &s.carts); err != nil {
		return fmt.Errorf("failed to parse cart snapshot: %w", err)
	}
	// Notifications are transient; any captured by the snapshot expired with
	// the process that wrote it.
	for _, c := range s.carts {
		c.Notification = ""
	}
	return nil
}

func snapshot(cart *domain.Cart) *domain.Cart {
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied
}
