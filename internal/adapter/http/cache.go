package http

import (
	"sync"

	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/domain"
)

// ResultCache is a thread-safe LRU cache of computed correction results,
// keyed by job ID. Job IDs are deterministic over the payload, so a cached
// entry is always valid for its key.
type ResultCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.CorrectionResultRecord
	prev  *entry
	next  *entry
}

// NewResultCache creates an empty cache bounded to maxEntries.
func NewResultCache(maxEntries int) *ResultCache {
	return &ResultCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

// Get returns the cached result for a job ID, promoting it to most recently
// used.
func (c *ResultCache) Get(jobID string) (domain.CorrectionResultRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[jobID]
	if !ok {
		return domain.CorrectionResultRecord{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

// Put stores a result, evicting the least recently used entry when full.
func (c *ResultCache) Put(jobID string, value domain.CorrectionResultRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[jobID]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: jobID, value: value}
	c.entries[jobID] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

// Len reports the number of cached results.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ResultCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *ResultCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *ResultCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *ResultCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
