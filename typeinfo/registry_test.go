package typeinfo

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry(recordType, commandType, segmentType, symbolType, anonType)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if r.Len() != 6 {
		t.Errorf("Len = %d, want 6", r.Len())
	}

	d, ok := r.Lookup(idSegment)
	if !ok || d != segmentType {
		t.Errorf("Lookup(segment) = %v, %v", d, ok)
	}
	if d, ok := r.Lookup(RootID); !ok || d != Root {
		t.Error("Root not registered")
	}
	if _, ok := r.Lookup(12345); ok {
		t.Error("Lookup found unknown id")
	}

	all := r.Descriptors()
	for i := 1; i < len(all); i++ {
		if all[i-1].ID() >= all[i].ID() {
			t.Fatalf("Descriptors not ordered: %d before %d", all[i-1].ID(), all[i].ID())
		}
	}

	children := r.Children(recordType)
	if len(children) != 2 || children[0] != commandType || children[1] != symbolType {
		t.Errorf("Children(record) = %v", children)
	}
}

func TestNewRegistryDuplicateID(t *testing.T) {
	clash := &Descriptor{id: idSymbol, parent: recordType, name: "clash", named: true}
	if _, err := NewRegistry(recordType, symbolType, clash); err == nil {
		t.Error("duplicate id accepted")
	}
	if _, err := NewRegistry(recordType, recordType); err != nil {
		t.Errorf("repeating the same descriptor rejected: %v", err)
	}
}

func TestNewRegistryUnregisteredAncestor(t *testing.T) {
	if _, err := NewRegistry(segmentType); err == nil {
		t.Error("chain through unregistered ancestors accepted")
	}
}

func TestNewRegistryRejectsNil(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Error("nil descriptor accepted")
	}
}

func TestNewRegistryDetached(t *testing.T) {
	detached := &Descriptor{id: 777}
	if _, err := NewRegistry(detached); err == nil {
		t.Error("descriptor that does not reach Root accepted")
	}
}

func TestMustRegistryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRegistry did not panic")
		}
	}()
	MustRegistry(segmentType)
}
