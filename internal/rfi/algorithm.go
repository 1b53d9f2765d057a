// SPDX-License-Identifier: MIT
package rfi

import (
	"fmt"
	"sort"
	"sync"
)

// Product identifies one flag product an algorithm can emit.
// Labels are small integers, 0..N-1, with per-algorithm meaning.
type Product struct {
	Label int
	Name  string
}

// Params holds an algorithm's numeric parameters by name.
type Params map[string]float64

// Algorithm describes a registered detection routine: its identity, the
// flag products it can emit, which of those are selected by default, and
// the Compute entry point driving the native routine against a prepared
// Context.
type Algorithm interface {
	Name() string
	Description() string
	DefaultParams() Params
	Products() []Product
	DefaultProducts() []int // labels selected when the caller does not choose
	Compute(det *Detector, ctx *Context, p Params) error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Algorithm{}
)

// Register adds an algorithm to the package registry. Registering a
// duplicate name panics; registration happens at init time only.
func Register(a Algorithm) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[a.Name()]; dup {
		panic(fmt.Sprintf("rfi: duplicate algorithm registration %q", a.Name()))
	}
	registry[a.Name()] = a
}

// Lookup returns the registered algorithm with the given name.
func Lookup(name string) (Algorithm, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("rfi: unknown algorithm %q", name)
	}
	return a, nil
}

// Names returns the sorted names of all registered algorithms.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mergeParams overlays caller parameters onto the algorithm defaults.
func mergeParams(def, p Params) Params {
	out := make(Params, len(def))
	for k, v := range def {
		out[k] = v
	}
	for k, v := range p {
		out[k] = v
	}
	return out
}
