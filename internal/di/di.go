// Package di provides a tiny, generic service container used to wire
// bounded-context modules together without every package importing every
// other package's concrete constructors.
package di

import "sync"

// ServiceRegistry is the read side of the container: modules depend on this
// narrower interface so factories cannot register new services mid-lookup.
type ServiceRegistry interface {
	Get(name string) interface{}
}

// Container is the full container: register eagerly-built values, or lazy
// factories keyed by a token via RegisterToken.
type Container interface {
	ServiceRegistry
	Register(name string, value interface{})
}

type factoryEntry struct {
	build func(ServiceRegistry) interface{}
	once  sync.Once
	value interface{}
}

// container is the default in-memory Container implementation.
type container struct {
	mu        sync.RWMutex
	values    map[string]interface{}
	factories map[string]*factoryEntry
}

// NewContainer creates an empty container.
func NewContainer() *container {
	return &container{
		values:    make(map[string]interface{}),
		factories: make(map[string]*factoryEntry),
	}
}

// Register stores an already-built value under name.
func (c *container) Register(name string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
}

// Get resolves a value registered directly, or lazily builds and memoizes a
// value registered via RegisterToken. Panics if name was never registered,
// since a missing wiring entry is a programming error, not a runtime one.
func (c *container) Get(name string) interface{} {
	c.mu.RLock()
	if v, ok := c.values[name]; ok {
		c.mu.RUnlock()
		return v
	}
	entry, ok := c.factories[name]
	c.mu.RUnlock()

	if !ok {
		panic("di: no service registered for token " + name)
	}

	entry.once.Do(func() {
		entry.value = entry.build(c)
	})
	return entry.value
}

// registerFactory stores a lazy, memoized factory under name.
func (c *container) registerFactory(name string, build func(ServiceRegistry) interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = &factoryEntry{build: build}
}

// RegisterToken registers a typed, lazily-built, memoized factory under
// token. The factory runs at most once, on first Get of any token that
// transitively depends on it.
func RegisterToken[T any](c Container, token string, factory func(ServiceRegistry) T) {
	cc, ok := c.(*container)
	if !ok {
		// Fall back to eager construction against a registry-only container.
		c.Register(token, factory(c))
		return
	}
	cc.registerFactory(token, func(sr ServiceRegistry) interface{} {
		return factory(sr)
	})
}

// MustGet resolves a token and type-asserts it to T, panicking with a
// descriptive message on mismatch instead of an opaque type assertion panic.
func MustGet[T any](sr ServiceRegistry, token string) T {
	v := sr.Get(token)
	t, ok := v.(T)
	if !ok {
		panic("di: service " + token + " does not implement the requested type")
	}
	return t
}
