package boa

import (
	"github.com/benbjohnson/immutable"
)

// FirstSlot is the first stack slot available to bindings and temporaries.
// Slots 0 and 1 hold the return linkage and are never assigned.
const FirstSlot int32 = 2

// Env maps identifiers to the stack slot holding their value. It is
// persistent: Extend returns a new Env and leaves the receiver untouched, so
// sibling subexpressions that share an Env never observe each other's
// bindings.
type Env struct {
	slots *immutable.Map[string, int32]
}

func NewEnv() Env {
	return Env{slots: immutable.NewMap[string, int32](nil)}
}

// Extend binds name to slot, shadowing any outer binding of the same name.
func (e Env) Extend(name string, slot int32) Env {
	if e.slots == nil {
		e = NewEnv()
	}
	return Env{slots: e.slots.Set(name, slot)}
}

func (e Env) Lookup(name string) (int32, bool) {
	if e.slots == nil {
		return 0, false
	}
	return e.slots.Get(name)
}

func (e Env) Len() int {
	if e.slots == nil {
		return 0
	}
	return e.slots.Len()
}
