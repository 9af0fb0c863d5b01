package cart

import (
	"context"
	"testing"
)

func newRegistry(t *testing.T, mirror Mirror) *Registry {
	t.Helper()
	reg, err := NewRegistry(RegistryOptions{StorageKey: "tahweela_cart", Mirror: mirror})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return reg
}

func TestRegistryKeepsOwnersApart(t *testing.T) {
	ctx := context.Background()
	mirror := NewMemoryMirror()
	reg := newRegistry(t, mirror)

	alice, err := reg.ForOwner(ctx, "user-a")
	if err != nil {
		t.Fatalf("for owner: %v", err)
	}
	bob, err := reg.ForOwner(ctx, "user-b")
	if err != nil {
		t.Fatalf("for owner: %v", err)
	}
	again, _ := reg.ForOwner(ctx, "user-a")
	if again != alice {
		t.Fatal("expected the same controller for the same owner")
	}

	_ = alice.Add(ctx, product("1", "sup1", 450), 2, nil)
	if bob.ItemCount() != 0 {
		t.Fatal("carts must not leak across owners")
	}
	if alice.Key() != "tahweela_cart:user-a" {
		t.Fatalf("unexpected mirror key %q", alice.Key())
	}
	if lines := mirroredLines(t, mirror, "tahweela_cart:user-a"); ItemCount(lines) != 2 {
		t.Fatalf("unexpected mirrored cart %+v", lines)
	}
	if _, err := reg.ForOwner(ctx, " "); err == nil {
		t.Fatal("expected blank owner to fail")
	}
}

func TestRegistryReleaseFlushesAndRehydrates(t *testing.T) {
	ctx := context.Background()
	mirror := NewMemoryMirror()
	reg := newRegistry(t, mirror)

	ctrl, _ := reg.ForOwner(ctx, "user-a")
	_ = ctrl.Add(ctx, product("1", "sup1", 450), 3, nil)

	if err := reg.Release(ctx, "user-a"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected released controller to be forgotten, have %d", reg.Len())
	}
	if err := reg.Release(ctx, "unknown"); err != nil {
		t.Fatalf("releasing unknown owner should be a no-op: %v", err)
	}

	restored, _ := reg.ForOwner(ctx, "user-a")
	if restored == ctrl || restored.ItemCount() != 3 {
		t.Fatalf("expected a fresh controller hydrated from the mirror, got %d items", restored.ItemCount())
	}
}

func TestRegistryTeardownCombinesFailures(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t, &failingMirror{saveErr: errMirrorDown})
	_, _ = reg.ForOwner(ctx, "user-a")
	_, _ = reg.ForOwner(ctx, "user-b")

	err := reg.Teardown(ctx)
	if err == nil {
		t.Fatal("expected combined teardown error")
	}
	if got := len(multierrErrors(err)); got != 2 {
		t.Fatalf("expected two flush failures, got %d", got)
	}

	ok := newRegistry(t, NewMemoryMirror())
	_, _ = ok.ForOwner(ctx, "user-a")
	if err := ok.Teardown(ctx); err != nil {
		t.Fatalf("unexpected teardown error: %v", err)
	}
}

func TestNewRegistryValidatesOptions(t *testing.T) {
	if _, err := NewRegistry(RegistryOptions{Mirror: NewMemoryMirror()}); err == nil {
		t.Fatal("expected missing storage key to fail")
	}
	if _, err := NewRegistry(RegistryOptions{StorageKey: "k"}); err == nil {
		t.Fatal("expected missing mirror to fail")
	}
}
