package processmq

import "sync"

// namedCache holds handles by name. The first successful create for a name
// wins and is returned for every later load of that name. Failed creates are
// not stored.
type namedCache[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

// load returns the handle stored for name, calling create on a miss. The lock
// is held while creating so a name is created at most once.
func (c *namedCache[T]) load(name string, create func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item, ok := c.items[name]; ok {
		return item, nil
	}
	item, err := create()
	if err != nil {
		var zero T
		return zero, err
	}
	if c.items == nil {
		c.items = make(map[string]T)
	}
	c.items[name] = item
	return item, nil
}

// drain empties the cache and returns what it held.
func (c *namedCache[T]) drain() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	c.items = nil
	return items
}
