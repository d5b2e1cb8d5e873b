// Package action defines the request shape clients send to the dispatcher.
package action

import "fmt"

// Action is a named request with optional arguments.
//
// Names are namespaced: "cursor.moveDown", "edit.insert", "file.save".
type Action struct {
	// Name is the fully qualified action name.
	Name string `json:"action"`

	// Args carries the action payload.
	Args Args `json:"args,omitempty"`

	// Count is the repeat count. Zero or one means run once.
	Count int `json:"count,omitempty"`
}

// New creates an action with the given name and no arguments.
func New(name string) Action {
	return Action{Name: name}
}

// With returns a copy of the action with key set to value.
func (a Action) With(key string, value any) Action {
	args := make(Args, len(a.Args)+1)
	for k, v := range a.Args {
		args[k] = v
	}
	args[key] = value
	a.Args = args
	return a
}

// Repeat returns a copy of the action with the repeat count set.
func (a Action) Repeat(count int) Action {
	a.Count = count
	return a
}

// String returns a short description of the action.
func (a Action) String() string {
	if a.Count > 1 {
		return fmt.Sprintf("%s x%d", a.Name, a.Count)
	}
	return a.Name
}

// Args holds action arguments decoded from the wire.
//
// JSON numbers decode as float64, so the typed getters accept every
// numeric representation a caller is likely to use.
type Args map[string]any

// Get returns the raw value for key.
func (a Args) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a[key]
	return v, ok
}

// GetString returns a string argument.
func (a Args) GetString(key string) (string, bool) {
	v, ok := a.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt returns an integer argument.
func (a Args) GetInt(key string) (int, bool) {
	v, ok := a.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// GetBool returns a boolean argument.
func (a Args) GetBool(key string) (bool, bool) {
	v, ok := a.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
