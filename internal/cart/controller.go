package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/internal/catalog"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/logger"
	"github.com/tahweela/tahweela-backend/pkg/metrics"
	"github.com/tahweela/tahweela-backend/pkg/types"
)

const (
	opAdd      = "add"
	opRemove   = "remove"
	opUpdate   = "update_quantity"
	opClear    = "clear"
	opHydrate  = "hydrate"
	opTeardown = "teardown"
)

// Options configures a Controller.
type Options struct {
	Key     string
	Mirror  Mirror
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
}

// Controller owns one cart. Every operation runs under a single mutex and each
// mutation writes the whole store through to the mirror before returning.
type Controller struct {
	mu       sync.Mutex
	key      string
	store    Store
	mirror   Mirror
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
	open     bool
	hydrated bool
}

// NewController validates the options and returns an empty, unhydrated cart.
func NewController(opts Options) (*Controller, error) {
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		return nil, fmt.Errorf("cart key required")
	}
	if opts.Mirror == nil {
		return nil, fmt.Errorf("cart mirror required")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Controller{
		key:     key,
		mirror:  opts.Mirror,
		logg:    logg,
		metrics: opts.Metrics,
	}, nil
}

// Key is the mirror key the cart is stored under.
func (c *Controller) Key() string {
	return c.key
}

// Init hydrates the store from the mirror once. A missing or unreadable
// payload leaves the cart empty; failures are logged, never returned.
func (c *Controller) Init(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hydrated {
		return
	}
	c.hydrated = true
	ctx = c.logg.WithCartKey(ctx, c.key)

	payload, err := c.mirror.Load(ctx, c.key)
	if err != nil {
		c.metrics.IncMirrorFailure(opHydrate)
		c.logg.Error(ctx, "failed to load cart from mirror", err)
		return
	}
	if len(payload) == 0 {
		return
	}
	lines, err := decodeLines(payload)
	if err != nil {
		c.metrics.IncMirrorFailure(opHydrate)
		c.logg.Error(ctx, "discarding malformed cart payload", err)
		return
	}
	c.store.replace(lines)
	if dropped := len(lines) - c.store.len(); dropped > 0 {
		c.logg.Warn(c.logg.WithField(ctx, "dropped_lines", dropped), "normalized hydrated cart")
	}
}

// Teardown flushes the current state to the mirror. Unlike mutations, it
// reports the failure so shutdown can surface it.
func (c *Controller) Teardown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx = c.logg.WithCartKey(ctx, c.key)
	if err := c.save(ctx); err != nil {
		c.metrics.IncMirrorFailure(opTeardown)
		c.logg.Error(ctx, "failed to flush cart on teardown", err)
		return fmt.Errorf("flush cart %s: %w", c.key, err)
	}
	return nil
}

// Add puts quantity units of product in the cart, merging into the line with
// the same identity when there is one. The cart opens on every add.
func (c *Controller) Add(ctx context.Context, product catalog.Product, quantity int, specs types.Specifications) error {
	_, err := c.AddAndSummarize(ctx, product, quantity, specs)
	return err
}

// AddAndSummarize is Add that also returns the summary of the state the add
// produced, computed under the same lock.
func (c *Controller) AddAndSummarize(ctx context.Context, product catalog.Product, quantity int, specs types.Specifications) (Summary, error) {
	if quantity < 1 {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if quantity > MaxLineQuantity {
		return Summary{}, pkgerrors.Newf(pkgerrors.CodeValidation, "quantity must be at most %d", MaxLineQuantity)
	}
	if strings.TrimSpace(product.ID) == "" {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(product.SupplierID) == "" {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "product supplier is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.store.add(product, quantity, specs) {
		return Summary{}, pkgerrors.Newf(pkgerrors.CodeValidation, "line quantity would exceed %d", MaxLineQuantity)
	}
	c.open = true
	c.commit(ctx, opAdd)
	return c.summarizeLocked(), nil
}

// Remove deletes the line with the given identity. A missing line is a no-op.
func (c *Controller) Remove(ctx context.Context, productID string, specs types.Specifications) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.remove(productID, specs)
	c.commit(ctx, opRemove)
}

// UpdateQuantity sets an absolute quantity. Zero or less removes the line.
func (c *Controller) UpdateQuantity(ctx context.Context, productID string, quantity int, specs types.Specifications) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.setQuantity(productID, quantity, specs)
	if quantity <= 0 {
		c.commit(ctx, opRemove)
		return
	}
	c.commit(ctx, opUpdate)
}

// Clear empties the cart.
func (c *Controller) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.clear()
	c.commit(ctx, opClear)
}

// Snapshot returns a deep copy of the lines in cart order.
func (c *Controller) Snapshot() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.snapshot()
}

// Total is the cart total over a fresh snapshot.
func (c *Controller) Total() decimal.Decimal {
	return Total(c.Snapshot())
}

// ItemCount sums the line quantities.
func (c *Controller) ItemCount() int {
	return ItemCount(c.Snapshot())
}

// SupplierGroups partitions the lines by supplier in first-appearance order.
func (c *Controller) SupplierGroups() []SupplierGroup {
	return SupplierGroups(c.Snapshot())
}

// Summary computes the derived cart view from a single snapshot.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summarizeLocked()
}

func (c *Controller) summarizeLocked() Summary {
	summary := Summarize(c.store.snapshot())
	summary.IsOpen = c.open
	return summary
}

// IsOpen reports the view-state open flag.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetOpen sets the open flag. It does not write through.
func (c *Controller) SetOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = open
}

// commit records the mutation and writes through. Mirror failures are
// swallowed: the in-memory cart stays authoritative.
func (c *Controller) commit(ctx context.Context, op string) {
	c.metrics.IncMutation(op)
	ctx = c.logg.WithFields(ctx, map[string]any{"cart_key": c.key, "op": op})
	if err := c.save(ctx); err != nil {
		c.metrics.IncMirrorFailure(op)
		c.logg.Error(ctx, "failed to write cart to mirror", err)
	}
}

func (c *Controller) save(ctx context.Context) error {
	payload, err := encodeLines(c.store.lines)
	if err != nil {
		return err
	}
	return c.mirror.Save(ctx, c.key, payload)
}
