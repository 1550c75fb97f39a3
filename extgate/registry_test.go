package extgate

import (
	"strings"
	"testing"

	"github.com/corvid-mail/imapcodec"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got Len=%d", r.Len())
	}
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Descriptor{Capability: imap.CapMove}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected Len=1, got %d", r.Len())
	}
}

func TestRegister_DuplicateReturnsError(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Descriptor{Capability: imap.CapIdle}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	err := r.Register(Descriptor{Capability: imap.CapIdle})
	if err == nil {
		t.Fatal("expected error on duplicate Register, got nil")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected 'already registered' error, got: %v", err)
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Descriptor{Capability: imap.CapMove})

	got, ok := r.Get(imap.CapMove)
	if !ok || got.Capability != imap.CapMove {
		t.Fatalf("got %#v, ok=%v", got, ok)
	}

	if _, ok := r.Get(imap.CapIdle); ok {
		t.Fatal("Get returned true for an unregistered capability")
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Descriptor{Capability: imap.CapMove})
	_ = r.Register(Descriptor{Capability: imap.CapIdle})

	r.Remove(imap.CapMove)
	if r.Len() != 1 {
		t.Fatalf("expected Len=1 after Remove, got %d", r.Len())
	}
	if _, ok := r.Get(imap.CapMove); ok {
		t.Fatal("MOVE should not be found after Remove")
	}

	r.Remove(imap.CapMove)
	if r.Len() != 1 {
		t.Fatalf("removing a nonexistent capability should be a no-op, got Len=%d", r.Len())
	}
}

func TestAll_ReturnsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Descriptor{Capability: imap.CapMove})
	_ = r.Register(Descriptor{Capability: imap.CapIdle})
	_ = r.Register(Descriptor{Capability: imap.CapQuota})

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(all))
	}
	want := []imap.Cap{imap.CapMove, imap.CapIdle, imap.CapQuota}
	for i, d := range all {
		if d.Capability != want[i] {
			t.Errorf("All()[%d] = %v, want %v", i, d.Capability, want[i])
		}
	}
}

func TestResolve_NoDependencies(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Descriptor{Capability: imap.CapMove})
	_ = r.Register(Descriptor{Capability: imap.CapIdle})

	sorted, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(sorted) != 2 {
		t.Fatalf("expected 2, got %d", len(sorted))
	}
}

func TestResolve_LinearDependency(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Descriptor{Capability: imap.CapQResync, Requires: []imap.Cap{imap.CapCondStore}})
	_ = r.Register(Descriptor{Capability: imap.CapCondStore})

	sorted, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(sorted) != 2 {
		t.Fatalf("expected 2, got %d", len(sorted))
	}
	pos := make(map[imap.Cap]int)
	for i, d := range sorted {
		pos[d.Capability] = i
	}
	if pos[imap.CapCondStore] >= pos[imap.CapQResync] {
		t.Errorf("CONDSTORE (pos %d) should come before QRESYNC (pos %d)", pos[imap.CapCondStore], pos[imap.CapQResync])
	}
}

func TestResolve_DiamondDependency(t *testing.T) {
	r := NewRegistry()
	// D requires B and C; B and C both require A.
	const a, b, c, d = imap.Cap("A"), imap.Cap("B"), imap.Cap("C"), imap.Cap("D")
	_ = r.Register(Descriptor{Capability: d, Requires: []imap.Cap{b, c}})
	_ = r.Register(Descriptor{Capability: b, Requires: []imap.Cap{a}})
	_ = r.Register(Descriptor{Capability: c, Requires: []imap.Cap{a}})
	_ = r.Register(Descriptor{Capability: a})

	sorted, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	pos := make(map[imap.Cap]int)
	for i, desc := range sorted {
		pos[desc.Capability] = i
	}
	if pos[a] >= pos[b] || pos[a] >= pos[c] {
		t.Errorf("A should precede both B and C: %v", pos)
	}
	if pos[b] >= pos[d] || pos[c] >= pos[d] {
		t.Errorf("B and C should precede D: %v", pos)
	}
}

func TestResolve_MissingDependency(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Descriptor{Capability: imap.CapQResync, Requires: []imap.Cap{imap.CapCondStore}})

	_, err := r.Resolve()
	if err == nil {
		t.Fatal("expected a missing-dependency error, got nil")
	}
	if !strings.Contains(err.Error(), "not registered") {
		t.Fatalf("expected 'not registered' in error, got: %v", err)
	}
}

func TestResolve_CircularDependency(t *testing.T) {
	r := NewRegistry()
	const a, b = imap.Cap("A"), imap.Cap("B")
	_ = r.Register(Descriptor{Capability: a, Requires: []imap.Cap{b}})
	_ = r.Register(Descriptor{Capability: b, Requires: []imap.Cap{a}})

	_, err := r.Resolve()
	if err == nil {
		t.Fatal("expected a circular dependency error, got nil")
	}
	if !strings.Contains(err.Error(), "circular") {
		t.Fatalf("expected 'circular' in error, got: %v", err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if r.Len() != len(Gateable) {
		t.Fatalf("DefaultRegistry Len = %d, want %d", r.Len(), len(Gateable))
	}
	d, ok := r.Get(imap.CapQResync)
	if !ok || len(d.Requires) != 1 || d.Requires[0] != imap.CapCondStore {
		t.Fatalf("QRESYNC descriptor = %#v", d)
	}
	if _, err := r.Resolve(); err != nil {
		t.Fatalf("DefaultRegistry should resolve cleanly: %v", err)
	}
}

func TestRegistry_Validate(t *testing.T) {
	r := DefaultRegistry()

	ok := &Profile{Capabilities: []string{"CONDSTORE", "QRESYNC"}}
	if err := r.Validate(ok); err != nil {
		t.Errorf("Validate(%v) = %v, want nil", ok.Capabilities, err)
	}

	bad := &Profile{Capabilities: []string{"QRESYNC"}}
	if err := r.Validate(bad); err == nil {
		t.Error("expected Validate to fail: QRESYNC without CONDSTORE")
	}
}
