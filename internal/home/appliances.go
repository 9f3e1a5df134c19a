package home

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ApplianceState is the live ON/OFF value of an appliance.
type ApplianceState string

// Appliance states.
const (
	StateOn  ApplianceState = "ON"
	StateOff ApplianceState = "OFF"
)

// Toggled returns the opposite state. Anything other than ON becomes ON.
func (s ApplianceState) Toggled() ApplianceState {
	if s == StateOn {
		return StateOff
	}
	return StateOn
}

// Appliance is one named entry of a room's appliance set.
type Appliance struct {
	Name  string
	State ApplianceState
}

// Appliances is an insertion-ordered appliance name to state mapping.
//
// It encodes as a JSON object and decoding keeps the document's key
// order, which drives the order of derived toggle actions.
type Appliances struct {
	entries []Appliance
}

// NewAppliances builds an ordered set from entries. A repeated name
// overwrites the earlier state in place.
func NewAppliances(entries ...Appliance) Appliances {
	var a Appliances
	for _, e := range entries {
		a.Set(e.Name, e.State)
	}
	return a
}

// Len returns the number of appliances.
func (a Appliances) Len() int {
	return len(a.entries)
}

// Names returns appliance names in insertion order.
func (a Appliances) Names() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the ordered entries.
func (a Appliances) Entries() []Appliance {
	return append([]Appliance(nil), a.entries...)
}

// Get returns the state of name and whether it exists.
func (a Appliances) Get(name string) (ApplianceState, bool) {
	for _, e := range a.entries {
		if e.Name == name {
			return e.State, true
		}
	}
	return "", false
}

// Set updates name in place, or appends it when new.
func (a *Appliances) Set(name string, state ApplianceState) {
	for i := range a.entries {
		if a.entries[i].Name == name {
			a.entries[i].State = state
			return
		}
	}
	a.entries = append(a.entries, Appliance{Name: name, State: state})
}

// Clone returns a copy that shares no memory with a.
func (a Appliances) Clone() Appliances {
	return Appliances{entries: a.Entries()}
}

// MarshalJSON encodes the set as an object in insertion order.
func (a Appliances) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range a.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(string(e.State))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of string states, keeping key order.
// null decodes to an empty set.
func (a *Appliances) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: malformed JSON", ErrInvalidAppliances)
	}

	result := gjson.ParseBytes(data)
	a.entries = nil

	switch {
	case result.Type == gjson.Null:
		return nil
	case !result.IsObject():
		return fmt.Errorf("%w: expected object, got %s", ErrInvalidAppliances, result.Type)
	}

	var err error
	result.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = fmt.Errorf("%w: state of %q must be a string", ErrInvalidAppliances, key.String())
			return false
		}
		a.Set(key.String(), ApplianceState(value.String()))
		return true
	})
	return err
}
