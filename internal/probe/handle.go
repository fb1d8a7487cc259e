package probe

// Handle wraps a possibly-absent value produced by a stage.
type Handle[T any] struct {
	value   T
	present bool
	stage   string
}

// Root returns a present handle that no stage produced. It seeds the chain.
func Root[T any](value T) Handle[T] {
	return Handle[T]{value: value, present: true}
}

// Get returns the wrapped value and whether it is present.
func (h Handle[T]) Get() (T, bool) {
	return h.value, h.present
}

// Present reports whether the handle carries a value.
func (h Handle[T]) Present() bool {
	return h.present
}

// Stage names the stage that produced the handle. Root handles return "".
func (h Handle[T]) Stage() string {
	return h.stage
}
