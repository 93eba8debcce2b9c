package cart

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	state := State{Cart: []LineItem{
		{Id: "p2", Title: "Sony WH-1000XM4", Price: 24990, Image: "/sony.png", Quantity: 2},
		{Id: "p1", Title: "Nike Air", Price: 4599.5, Image: "/nike.png", Quantity: 1},
	}}

	data, err := Encode(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(data, `"version":1`) {
		t.Fatalf("expected schema version in %s", data)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Cart) != len(state.Cart) {
		t.Fatalf("expected %d lines, got %d", len(state.Cart), len(decoded.Cart))
	}
	for i := range state.Cart {
		if decoded.Cart[i] != state.Cart[i] {
			t.Errorf("line %d: %+v != %+v", i, decoded.Cart[i], state.Cart[i])
		}
	}
}

func TestEncodeEmptyState(t *testing.T) {
	data, err := Encode(State{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if data != `{"state":{"cart":[]},"version":1}` {
		t.Fatalf("unexpected encoding %s", data)
	}
}

func TestDecodeRejects(t *testing.T) {
	var tests = []struct {
		in      string
		version bool
	}{
		{`{`, false},
		{`{"state":{"cart":[]},"version":2}`, true},
		{`{"state":{"cart":[]}}`, true},
	}

	for _, test := range tests {
		_, err := Decode(test.in)
		if err == nil {
			t.Errorf("%q: expected error", test.in)
			continue
		}
		if errors.Is(err, ErrVersionMismatch) != test.version {
			t.Errorf("%q: version mismatch = %v, want %v", test.in, !test.version, test.version)
		}
	}
}

func TestDecodeEnforcesInvariants(t *testing.T) {
	data := `{"state":{"cart":[
		{"id":"a","price":10,"quantity":0},
		{"id":"a","price":99,"quantity":5},
		{"id":"","price":1,"quantity":1},
		{"id":"b","price":-3,"quantity":1},
		{"id":"c","price":2,"quantity":-4}
	]},"version":1}`

	state, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(state.Cart) != 2 {
		t.Fatalf("expected 2 lines, got %+v", state.Cart)
	}
	if state.Cart[0].Id != "a" || state.Cart[0].Price != 10 || state.Cart[0].Quantity != 1 {
		t.Errorf("unexpected first line %+v", state.Cart[0])
	}
	if state.Cart[1].Id != "c" || state.Cart[1].Quantity != 1 {
		t.Errorf("unexpected second line %+v", state.Cart[1])
	}
}
