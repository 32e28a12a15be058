package repokit

// Binder produces a repo bound to one Queryer, so a service can hand the
// same repo a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind panics on a nil q
func (f BindFunc[T]) Bind(q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil queryer")
	}
	return f(q)
}
