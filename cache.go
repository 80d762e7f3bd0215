package paper

// cache is a memoized value with a validity flag.
type cache[T any] struct {
	value T
	valid bool
}

// get returns the cached value, computing it first if it is stale.
func (c *cache[T]) get(compute func() T) T {
	if !c.valid {
		c.value = compute()
		c.valid = true
	}
	return c.value
}

func (c *cache[T]) invalidate() {
	var zero T
	c.value = zero
	c.valid = false
}
