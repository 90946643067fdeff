package internal

import (
	"errors"
	"fmt"
	"sync"
)

// Factory builds a service instance. It receives the container so nested
// dependencies can be resolved with Make; constructor auto-wiring is
// expressed as explicit factories calling Make recursively, not as runtime
// reflection over constructor signatures.
type Factory func(c *Container) (any, error)

// Sentinel errors for container operations.
var (
	// ErrNotRegistered is returned by Make for an abstract with no binding
	// and no instance.
	ErrNotRegistered = errors.New("container: abstract not registered")

	// ErrInvalidConcrete is raised when Bind receives a concrete value that
	// is neither a factory function nor an alias string.
	ErrInvalidConcrete = errors.New("container: concrete must be a factory or an alias string")

	// ErrCircularAlias is returned when alias bindings form a cycle.
	ErrCircularAlias = errors.New("container: circular alias chain")

	// ErrTypeMismatch is returned by Resolve when the resolved instance does
	// not have the requested type.
	ErrTypeMismatch = errors.New("container: resolved instance has unexpected type")
)

// binding holds a resolution strategy for an abstract identifier.
// Exactly one of factory or alias is set.
type binding struct {
	factory Factory
	alias   string
	shared  bool
}

// Container is a dependency-injection registry. Abstract identifiers resolve
// to concrete instances via registered factories or alias chains, with
// optional singleton caching.
//
// Bindings are expected to be registered during a single-threaded setup phase
// before request serving starts; Make is safe for concurrent use afterwards.
type Container struct {
	bindings  map[string]binding
	instances map[string]any
	mu        sync.RWMutex
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{
		bindings:  make(map[string]binding),
		instances: make(map[string]any),
	}
}

// Bind registers a resolution strategy for abstract. The concrete value may
// be a Factory (or any func with a compatible shape) or a string naming
// another binding to delegate to. When shared is true the first resolved
// instance is cached and reused.
//
// Rebinding an abstract evicts any instance cached for it, so the next Make
// constructs from the new binding.
//
// An unsupported concrete type panics: bindings happen at startup and a bad
// shape is a programmer error.
func (c *Container) Bind(abstract string, concrete any, shared bool) {
	b := binding{shared: shared}

	switch v := concrete.(type) {
	case Factory:
		b.factory = v
	case func(c *Container) (any, error):
		b.factory = v
	case func(c *Container) any:
		b.factory = func(c *Container) (any, error) { return v(c), nil }
	case string:
		b.alias = v
	default:
		panic(fmt.Errorf("%w: binding %q got %T", ErrInvalidConcrete, abstract, concrete))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[abstract] = b
	// Rebinding invalidates the cached instance.
	delete(c.instances, abstract)
}

// Singleton registers a shared binding: the factory runs once and the result
// is reused for every subsequent Make.
func (c *Container) Singleton(abstract string, concrete any) {
	c.Bind(abstract, concrete, true)
}

// Instance registers an already-constructed shared value. Instances always
// win over bindings during resolution.
func (c *Container) Instance(abstract string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[abstract] = value
}

// Alias makes abstract resolve to whatever target resolves to.
func (c *Container) Alias(abstract, target string) {
	c.Bind(abstract, target, false)
}

// Make resolves abstract to an instance, constructing lazily.
// Resolution failures (unknown abstract, factory errors, alias cycles)
// propagate to the caller; they are never swallowed.
func (c *Container) Make(abstract string) (any, error) {
	return c.resolve(abstract, nil)
}

// MustMake resolves abstract or panics. Intended for startup wiring where
// a missing binding is fatal.
func (c *Container) MustMake(abstract string) any {
	v, err := c.Make(abstract)
	if err != nil {
		panic(err)
	}
	return v
}

func (c *Container) resolve(abstract string, seen map[string]bool) (any, error) {
	c.mu.RLock()
	if v, ok := c.instances[abstract]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	b, ok := c.bindings[abstract]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, abstract)
	}

	var v any
	var err error

	if b.alias != "" {
		if seen[abstract] {
			return nil, fmt.Errorf("%w: %q", ErrCircularAlias, abstract)
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		seen[abstract] = true
		v, err = c.resolve(b.alias, seen)
	} else {
		v, err = b.factory(c)
	}
	if err != nil {
		return nil, fmt.Errorf("container: make %q: %w", abstract, err)
	}

	if b.shared {
		c.mu.Lock()
		// A concurrent Make may have cached first; keep the existing instance
		// so all callers observe the same singleton.
		if cached, ok := c.instances[abstract]; ok {
			v = cached
		} else {
			c.instances[abstract] = v
		}
		c.mu.Unlock()
	}

	return v, nil
}

// Bound reports whether abstract has a binding or an instance.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.instances[abstract]; ok {
		return true
	}
	_, ok := c.bindings[abstract]
	return ok
}

// Has is an alias for Bound.
func (c *Container) Has(abstract string) bool {
	return c.Bound(abstract)
}

// Flush removes all bindings and instances.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]binding)
	c.instances = make(map[string]any)
}

// Provide registers a typed factory for abstract.
func Provide[T any](c *Container, abstract string, factory func(c *Container) (T, error), shared bool) {
	c.Bind(abstract, func(c *Container) (any, error) {
		return factory(c)
	}, shared)
}

// Resolve resolves abstract and asserts it to T.
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T

	v, err := c.Make(abstract)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T", ErrTypeMismatch, abstract, v)
	}
	return typed, nil
}

// MustResolve resolves abstract as T or panics.
func MustResolve[T any](c *Container, abstract string) T {
	v, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return v
}
