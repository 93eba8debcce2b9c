package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion of the persisted envelope. Slots written with any other
// version are discarded on boot.
const SchemaVersion = 1

// DefaultSlot is the key carts are stored under unless told otherwise.
const DefaultSlot = "cart-storage"

var ErrVersionMismatch = errors.New("persisted cart has an unknown schema version")

// Bucket is a single durable slot holding the encoded cart.
type Bucket interface {

	// Restore returns the stored text, or "" when the slot is empty.
	Restore() (string, error)

	// Save replaces the slot contents.
	Save(data string) error
}

// State is the aggregate persisted for a cart.
type State struct {
	Cart []LineItem `json:"cart"`
}

type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// Encode serializes the state into its textual slot representation.
func Encode(state State) (string, error) {
	if state.Cart == nil {
		state.Cart = []LineItem{}
	}
	bytes, err := json.Marshal(envelope{State: state, Version: SchemaVersion})
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Decode parses a slot previously written by Encode.
func Decode(data string) (State, error) {
	var env envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return State{}, err
	}
	if env.Version != SchemaVersion {
		return State{}, fmt.Errorf("%w: got %d", ErrVersionMismatch, env.Version)
	}
	return sanitize(env.State), nil
}

// sanitize enforces the cart invariants on restored data: unique ids,
// positive quantities and non-negative prices.
func sanitize(state State) State {
	seen := make(map[string]struct{}, len(state.Cart))
	clean := make([]LineItem, 0, len(state.Cart))
	for _, line := range state.Cart {
		if line.Id == "" || line.Price < 0 {
			continue
		}
		if _, dup := seen[line.Id]; dup {
			continue
		}
		seen[line.Id] = struct{}{}
		line.Quantity = clamp(line.Quantity)
		clean = append(clean, line)
	}
	return State{Cart: clean}
}
