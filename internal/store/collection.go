package store

import (
	"sort"
	"sync"
)

// Record is anything keyed by an integer primary key
type Record interface {
	ID() int
}

// Collection is an insertion-ordered, id-keyed set of records with its own
// monotonic id counter. Records are stored and returned by value.
type Collection[T Record] struct {
	mu     sync.RWMutex
	items  map[int]T
	order  []int
	nextID int
}

// NewCollection creates an empty collection whose first allocated id is 1
func NewCollection[T Record]() *Collection[T] {
	return &Collection[T]{
		items:  make(map[int]T),
		nextID: 1,
	}
}

// Seed loads initial records in ascending id order and moves the counter past
// the highest seeded id. Seeding never lowers the counter.
func (c *Collection[T]) Seed(records []T) {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, record := range sorted {
		id := record.ID()
		if _, exists := c.items[id]; !exists {
			c.order = append(c.order, id)
		}
		c.items[id] = record
		if id >= c.nextID {
			c.nextID = id + 1
		}
	}
}

// Get returns the record with the given id and whether it exists
func (c *Collection[T]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.items[id]
	return record, ok
}

// Has reports whether a record with the given id exists
func (c *Collection[T]) Has(id int) bool {
	_, ok := c.Get(id)
	return ok
}

// List returns all records in insertion order
func (c *Collection[T]) List() []T {
	return c.Filter(nil)
}

// Filter returns the records matching keep in insertion order.
// A nil keep matches everything. The result is never nil.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]T, 0, len(c.order))
	for _, id := range c.order {
		record := c.items[id]
		if keep == nil || keep(record) {
			result = append(result, record)
		}
	}
	return result
}

// Insert allocates the next id, builds the record with it and stores it
func (c *Collection[T]) Insert(build func(id int) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	record := build(id)
	c.items[id] = record
	c.order = append(c.order, id)
	return record
}

// Update applies mutate to a copy of the stored record and writes it back.
// mutate must not change the record's id.
func (c *Collection[T]) Update(id int, mutate func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}

	mutate(&record)
	c.items[id] = record
	return record, true
}

// Delete erases the record and reports whether it existed
func (c *Collection[T]) Delete(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}

	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// NextID returns the id the next Insert will allocate
func (c *Collection[T]) NextID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nextID
}
