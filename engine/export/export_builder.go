package export

// WriterBuilderOption is a functional option for configuring a Writer on
// creation.
type WriterBuilderOption func(workers *int)

// WithWorkers sets the number of encoding workers.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - WriterBuilderOption: the option to apply
func WithWorkers(n int) WriterBuilderOption {
	return func(workers *int) {
		if n > 0 {
			*workers = n
		}
	}
}
