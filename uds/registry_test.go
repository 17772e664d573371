package uds

import (
	"errors"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	a := &Service{Name: "A", SID: 0x10}
	b := &Service{Name: "B", SID: 0x22}
	if err := r.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(b); err != nil {
		t.Fatal(err)
	}

	if svc, ok := r.ByRequestID(0x22); !ok || svc != b {
		t.Errorf("ByRequestID(0x22) = %v, %v", svc, ok)
	}
	if svc, ok := r.ByResponseID(0x50); !ok || svc != a {
		t.Errorf("ByResponseID(0x50) = %v, %v", svc, ok)
	}
	// not found is not an error, the caller decides
	if _, ok := r.ByRequestID(0x99); ok {
		t.Error("lookup of an unregistered id should miss")
	}
	if _, ok := r.ByResponseID(0x99); ok {
		t.Error("response lookup of an unregistered id should miss")
	}
}

func TestRegistryRejectsDuplicateSID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Service{Name: "First", SID: 0x10}); err != nil {
		t.Fatal(err)
	}
	err := r.Register(&Service{Name: "Second", SID: 0x10})
	var schema SchemaError
	if !errors.As(err, &schema) {
		t.Errorf("expected SchemaError, got %v", err)
	}
	if err := r.Register(nil); err == nil {
		t.Error("registering nil should fail")
	}
}

func TestRegistryServicesOrder(t *testing.T) {
	r := NewRegistry().MustRegister(
		&Service{Name: "A", SID: 0x10},
		&Service{Name: "B", SID: 0x11},
	)
	services := r.Services()
	if len(services) != 2 || services[0].Name != "A" || services[1].Name != "B" {
		t.Errorf("unexpected registration order: %v", services)
	}
}
