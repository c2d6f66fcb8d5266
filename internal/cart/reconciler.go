// Package cart keeps the client-side cart consistent between anonymous
// (local only) and authenticated (server-backed) modes.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/client"
	"storefront/internal/model"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

// SyncStatus tags how an AddItem call reached its result.
type SyncStatus int

const (
	// SyncedRemote means the remote cart accepted the item.
	SyncedRemote SyncStatus = iota
	// SyncedLocalOnly means the item exists only in the local cart, either
	// because there is no session or the remote call failed.
	SyncedLocalOnly
	// SyncFailedAuth means the remote rejected the session (401/403) and
	// the item was added locally.
	SyncFailedAuth
)

func (s SyncStatus) String() string {
	switch s {
	case SyncedRemote:
		return "synced-remote"
	case SyncedLocalOnly:
		return "synced-local-only"
	case SyncFailedAuth:
		return "sync-failed-auth"
	default:
		return fmt.Sprintf("SyncStatus(%d)", int(s))
	}
}

// Result is the outcome of AddItem. Cart is always usable.
type Result struct {
	Cart   model.Cart
	Status SyncStatus
	// Authoritative is set when the remote returned a cart that replaced
	// the local one.
	Authoritative bool
	// Err is the remote failure behind a local-only result, if any.
	Err error
}

// Message returns the line to show the shopper after adding name.
func (r Result) Message(name string) string {
	switch {
	case r.Status == SyncedRemote:
		return fmt.Sprintf("%s added to cart", name)
	case r.Status == SyncFailedAuth, r.Err == nil:
		return fmt.Sprintf("%s added to cart locally. Log in to save your cart.", name)
	default:
		return fmt.Sprintf("%s added to cart (offline/local).", name)
	}
}

// Remote is the server-side cart endpoint.
type Remote interface {
	AddToCart(ctx context.Context, token, itemID string, quantity int) (model.Cart, bool, error)
}

// Sessions reports the current session, nil when anonymous.
type Sessions interface {
	Current(ctx context.Context) *model.Session
}

// Reconciler is the single writer of the cart. The remote call in AddItem
// runs without holding the lock, so a slow response can still overwrite a
// newer local change (last write wins).
type Reconciler struct {
	store    storage.Store
	remote   Remote
	sessions Sessions
	notifier *Notifier
	logger   zerolog.Logger

	mu     sync.Mutex
	cart   model.Cart
	loaded bool
}

// NewReconciler creates a reconciler. remote and sessions may be nil for a
// purely local cart; notifier may be nil when nobody listens.
func NewReconciler(store storage.Store, remote Remote, sessions Sessions, notifier *Notifier, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		store:    store,
		remote:   remote,
		sessions: sessions,
		notifier: notifier,
		logger:   logger.With().Str("component", "cart").Logger(),
		cart:     model.Cart{},
	}
}

// Load reads the stored snapshot into memory and returns it. A missing or
// malformed snapshot is an empty cart.
func (r *Reconciler) Load(ctx context.Context) model.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loadLocked(ctx)
	return r.cart.Clone()
}

// Cart returns the in-memory cart, loading it first if needed.
func (r *Reconciler) Cart(ctx context.Context) model.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		r.loadLocked(ctx)
	}
	return r.cart.Clone()
}

// AddItem adds quantity units of product (quantity < 1 counts as 1). With a
// session the remote cart is tried first; every failure falls back to the
// local merge rule.
func (r *Reconciler) AddItem(ctx context.Context, product model.Product, quantity int) Result {
	if quantity < 1 {
		quantity = 1
	}

	log := r.logger.With().Str("product_id", product.ID).Int("quantity", quantity).Logger()

	var sess *model.Session
	if r.sessions != nil {
		sess = r.sessions.Current(ctx)
	}

	if sess == nil || r.remote == nil {
		log.Debug().Msg("no session, adding locally")
		return Result{Cart: r.merge(ctx, product, quantity), Status: SyncedLocalOnly}
	}

	remoteCart, ok, err := r.remote.AddToCart(ctx, sess.Token, product.ID, quantity)
	switch {
	case err != nil && client.IsAuthError(err):
		log.Warn().Err(err).Msg("session rejected by remote cart, adding locally")
		return Result{Cart: r.merge(ctx, product, quantity), Status: SyncFailedAuth, Err: err}

	case err != nil:
		log.Warn().Err(err).Msg("remote cart unavailable, adding locally")
		return Result{Cart: r.merge(ctx, product, quantity), Status: SyncedLocalOnly, Err: err}

	case ok:
		log.Debug().Int("lines", len(remoteCart)).Msg("remote cart replaces local cart")
		return Result{Cart: r.replace(ctx, remoteCart), Status: SyncedRemote, Authoritative: true}

	default:
		log.Debug().Msg("remote accepted item without a cart, merging locally")
		return Result{Cart: r.merge(ctx, product, quantity), Status: SyncedRemote}
	}
}

// RemoveItem drops the line for productID. Removing an absent product
// changes nothing. Removal is local only.
func (r *Reconciler) RemoveItem(ctx context.Context, productID string) model.Cart {
	r.mu.Lock()
	if !r.loaded {
		r.loadLocked(ctx)
	}

	next := make(model.Cart, 0, len(r.cart))
	for _, line := range r.cart {
		if line.ProductID != productID {
			next = append(next, line)
		}
	}
	r.cart = next
	r.persistLocked(ctx)
	snapshot := r.cart.Clone()
	r.mu.Unlock()

	r.notify(snapshot)
	return snapshot
}

// TotalPrice returns the sum of price × quantity over the cart.
func TotalPrice(cart model.Cart) float64 {
	return cart.Total()
}

// merge applies the local merge rule: bump the existing line or append a
// new one.
func (r *Reconciler) merge(ctx context.Context, product model.Product, quantity int) model.Cart {
	r.mu.Lock()
	if !r.loaded {
		r.loadLocked(ctx)
	}

	next := r.cart.Clone()
	if i := next.Find(product.ID); i >= 0 {
		next[i].Quantity += quantity
	} else {
		next = append(next, model.NewCartLine(product, quantity))
	}
	r.cart = next
	r.persistLocked(ctx)
	snapshot := r.cart.Clone()
	r.mu.Unlock()

	r.notify(snapshot)
	return snapshot
}

// replace installs a remote cart wholesale.
func (r *Reconciler) replace(ctx context.Context, remote model.Cart) model.Cart {
	r.mu.Lock()
	r.cart = remote.Normalize()
	r.loaded = true
	r.persistLocked(ctx)
	snapshot := r.cart.Clone()
	r.mu.Unlock()

	r.notify(snapshot)
	return snapshot
}

func (r *Reconciler) loadLocked(ctx context.Context) {
	r.loaded = true
	r.cart = model.Cart{}

	raw, err := r.store.Get(ctx, storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn().Err(err).Msg("failed to read stored cart, starting empty")
		}
		return
	}

	var stored model.Cart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		r.logger.Warn().Err(err).Msg("stored cart is malformed, starting empty")
		return
	}
	r.cart = stored.Normalize()
}

// persistLocked writes the cart snapshot. A write failure leaves the
// in-memory cart in place and is only logged.
func (r *Reconciler) persistLocked(ctx context.Context) {
	data, err := json.Marshal(r.cart)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to encode cart")
		return
	}
	if err := r.store.Set(ctx, storage.KeyCart, string(data)); err != nil {
		r.logger.Error().Err(err).Msg("failed to persist cart")
	}
}

func (r *Reconciler) notify(cart model.Cart) {
	if r.notifier == nil {
		return
	}
	r.notifier.Publish(Event{Count: cart.Count(), Cart: cart})
}
