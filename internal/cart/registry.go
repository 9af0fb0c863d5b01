package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/tahweela/tahweela-backend/pkg/logger"
	"github.com/tahweela/tahweela-backend/pkg/metrics"
)

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	StorageKey string
	Mirror     Mirror
	Logger     *logger.Logger
	Metrics    *metrics.CartMetrics
}

// Registry hands out one hydrated Controller per owner.
type Registry struct {
	mu          sync.Mutex
	storageKey  string
	mirror      Mirror
	logg        *logger.Logger
	metrics     *metrics.CartMetrics
	controllers map[string]*Controller
}

func NewRegistry(opts RegistryOptions) (*Registry, error) {
	key := strings.TrimSpace(opts.StorageKey)
	if key == "" {
		return nil, fmt.Errorf("cart storage key required")
	}
	if opts.Mirror == nil {
		return nil, fmt.Errorf("cart mirror required")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Registry{
		storageKey:  key,
		mirror:      opts.Mirror,
		logg:        logg,
		metrics:     opts.Metrics,
		controllers: make(map[string]*Controller),
	}, nil
}

// MirrorKey is the key an owner's cart is mirrored under.
func (r *Registry) MirrorKey(owner string) string {
	return r.storageKey + ":" + owner
}

// ForOwner returns the owner's controller, creating and hydrating it on first use.
func (r *Registry) ForOwner(ctx context.Context, owner string) (*Controller, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("cart owner required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ctrl, ok := r.controllers[owner]; ok {
		return ctrl, nil
	}
	ctrl, err := NewController(Options{
		Key:     r.MirrorKey(owner),
		Mirror:  r.mirror,
		Logger:  r.logg,
		Metrics: r.metrics,
	})
	if err != nil {
		return nil, err
	}
	ctrl.Init(ctx)
	r.controllers[owner] = ctrl
	return ctrl, nil
}

// Release flushes and forgets the owner's controller. Unknown owners are a no-op.
func (r *Registry) Release(ctx context.Context, owner string) error {
	r.mu.Lock()
	ctrl, ok := r.controllers[owner]
	delete(r.controllers, owner)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return ctrl.Teardown(ctx)
}

// Len reports how many carts are live in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Teardown flushes every live cart and returns the combined failures.
func (r *Registry) Teardown(ctx context.Context) error {
	r.mu.Lock()
	controllers := make([]*Controller, 0, len(r.controllers))
	for _, ctrl := range r.controllers {
		controllers = append(controllers, ctrl)
	}
	r.mu.Unlock()

	var errs error
	for _, ctrl := range controllers {
		errs = multierr.Append(errs, ctrl.Teardown(ctx))
	}
	return errs
}
