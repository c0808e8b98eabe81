package serde

// ContextEngine provides the encoding of a format to the format engines.
type ContextEngine interface {
	// GetFormat returns the format of the engine.
	GetFormat() Format

	// Marshal returns the encoding of the value.
	Marshal(value interface{}) ([]byte, error)

	// Unmarshal populates the value from its encoding.
	Unmarshal(data []byte, value interface{}) error
}

// Context is given to every serialization request. Besides the format engine,
// it can carry factories that replace the default decoding of a nested
// message, for instance the keys of a transaction.
type Context struct {
	ContextEngine

	factories map[interface{}]Factory
}

// NewContext returns a context of the engine without factories.
func NewContext(engine ContextEngine) Context {
	return Context{ContextEngine: engine}
}

// GetFactory returns the factory of the key, or nil.
func (ctx Context) GetFactory(key interface{}) Factory {
	return ctx.factories[key]
}

// FactoryOf returns the factory of the key, or the fallback when the context
// has none.
func (ctx Context) FactoryOf(key interface{}, fallback Factory) Factory {
	fac, ok := ctx.factories[key]
	if !ok || fac == nil {
		return fallback
	}

	return fac
}

// WithFactory returns a copy of the context where the key resolves to the
// factory. The original context is left untouched.
func WithFactory(ctx Context, key interface{}, f Factory) Context {
	factories := make(map[interface{}]Factory, len(ctx.factories)+1)

	for k, v := range ctx.factories {
		factories[k] = v
	}

	factories[key] = f
	ctx.factories = factories

	return ctx
}
