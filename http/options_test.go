package http

import (
	"net"
	"reflect"
	"testing"
)

func TestOptions_CleanDefaults(t *testing.T) {
	cleaned := Options{}.Clean()

	if cleaned.Method != "GET" {
		t.Errorf("expected default method GET, got %q", cleaned.Method)
	}
	if cleaned.MaxHeaderSize != DefaultMaxHeaderSize {
		t.Errorf("expected max header size %d, got %d", DefaultMaxHeaderSize, cleaned.MaxHeaderSize)
	}
	if cleaned.SetHost == nil || !*cleaned.SetHost {
		t.Error("expected SetHost to default to true")
	}
	if cleaned.Resolver != net.DefaultResolver {
		t.Error("expected the system resolver by default")
	}
}

func TestOptions_CleanUppercasesMethod(t *testing.T) {
	cleaned := Options{Method: " post "}.Clean()
	if cleaned.Method != "POST" {
		t.Errorf("expected POST, got %q", cleaned.Method)
	}
}

func TestOptions_CleanKeepsExplicitSetHostFalse(t *testing.T) {
	cleaned := Options{SetHost: Bool(false)}.Clean()
	if cleaned.SetHost == nil || *cleaned.SetHost {
		t.Error("expected explicit SetHost=false to survive cleaning")
	}
}

func TestOptions_CleanedSetsCompareEqual(t *testing.T) {
	// Two differently-spelled but equivalent option sets must clean to
	// deeply-equal values; the redirect cycle check depends on it.
	a := Options{}.Clean()
	b := Options{Method: "get", Headers: HeaderFromMap(nil)}.Clean()

	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected cleaned options to be deeply equal:\n%+v\n%+v", a, b)
	}
}

func TestOptions_CleanDoesNotMutateOriginal(t *testing.T) {
	o := Options{Method: "post"}
	_ = o.Clean()
	if o.Method != "post" {
		t.Errorf("Clean mutated its receiver: %q", o.Method)
	}
}
