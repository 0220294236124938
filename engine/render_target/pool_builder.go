package render_target

// PoolBuilderOption is a functional option for configuring a Pool.
type PoolBuilderOption func(*pool)

// WithCapacity limits the number of targets live at once. Zero means unlimited.
//
// Parameters:
//   - n: the maximum number of live targets
//
// Returns:
//   - PoolBuilderOption: a function that sets the capacity
func WithCapacity(n int) PoolBuilderOption {
	return func(p *pool) {
		p.capacity = max(n, 0)
	}
}

// WithIdleLimit sets how many released targets are kept for reuse. Zero frees every target on
// release.
//
// Parameters:
//   - n: the maximum number of idle targets
//
// Returns:
//   - PoolBuilderOption: a function that sets the idle limit
func WithIdleLimit(n int) PoolBuilderOption {
	return func(p *pool) {
		p.idleLimit = max(n, 0)
	}
}

// WithAllocator sets the backing allocator, for example NewWGPUAllocator.
//
// Parameters:
//   - a: the allocator
//
// Returns:
//   - PoolBuilderOption: a function that sets the allocator
func WithAllocator(a Allocator) PoolBuilderOption {
	return func(p *pool) {
		if a != nil {
			p.allocator = a
		}
	}
}
