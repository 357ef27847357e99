package scoring

import "sync"

// Cache memoizes similarity scores across postings that share description
// text. It is owned by whoever builds the engine and passed in explicitly,
// bounded by a fixed capacity, and safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	values   map[string]float64
	order    []string
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache{
		capacity: capacity,
		values:   make(map[string]float64, capacity),
	}
}

func (c *Cache) Get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

// Put stores a value, evicting the oldest entry once the capacity is
// reached.
func (c *Cache) Put(key string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.values[key]; exists {
		c.values[key] = value
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.values, oldest)
	}
	c.values[key] = value
	c.order = append(c.order, key)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
