package figure

// Decorator post-processes an assembled figure, for example to apply theme
// tokens to the layout.
type Decorator interface {
	Decorate(*Figure) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Figure) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(fig *Figure) error {
	return fn(fig)
}
