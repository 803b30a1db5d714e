package anki

import (
	"container/list"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheCapacity is the number of templates kept by NewTemplateCache
// when a non-positive capacity is given.
const DefaultCacheCapacity = 512

// ParseResult is the outcome of one parse attempt: exactly one of Node and
// Err is set.
type ParseResult struct {
	Node *Node
	Err  error
}

type cacheEntry struct {
	template string
	result   ParseResult
}

// TemplateCache is a thread-safe LRU cache of parse results keyed by the raw
// template string. Failed parses are cached too, so a broken template keeps
// reporting the same error.
type TemplateCache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	group    singleflight.Group
}

// NewTemplateCache creates a new template cache holding at most capacity
// templates.
func NewTemplateCache(capacity int) *TemplateCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &TemplateCache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves the stored parse result for a template.
func (tc *TemplateCache) Get(template string) (ParseResult, bool) {
	tc.mu.RLock()
	el, ok := tc.items[template]
	alreadyFront := ok && tc.ll.Front() == el
	tc.mu.RUnlock()
	if !ok {
		return ParseResult{}, false
	}
	if !alreadyFront {
		tc.mu.Lock()
		el, ok = tc.items[template]
		if ok {
			tc.ll.MoveToFront(el)
		}
		tc.mu.Unlock()
		if !ok {
			return ParseResult{}, false
		}
	}
	return el.Value.(*cacheEntry).result, true
}

// Parse returns the tree for template, parsing it on first use. Concurrent
// first-time calls for the same template share a single parse.
func (tc *TemplateCache) Parse(template string) (*Node, error) {
	if res, ok := tc.Get(template); ok {
		return res.Node, res.Err
	}
	v, _, _ := tc.group.Do(template, func() (interface{}, error) {
		if res, ok := tc.Get(template); ok {
			return res, nil
		}
		node, err := NewParser(template).ParseAll()
		res := ParseResult{Node: node, Err: err}
		tc.set(template, res)
		return res, nil
	})
	res := v.(ParseResult)
	return res.Node, res.Err
}

// set stores a complete parse result, evicting the least recently used
// entry when full.
func (tc *TemplateCache) set(template string, res ParseResult) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if el, ok := tc.items[template]; ok {
		tc.ll.MoveToFront(el)
		return
	}
	if tc.ll.Len() >= tc.capacity {
		if back := tc.ll.Back(); back != nil {
			tc.ll.Remove(back)
			delete(tc.items, back.Value.(*cacheEntry).template)
		}
	}
	tc.items[template] = tc.ll.PushFront(&cacheEntry{template: template, result: res})
}

// Len returns the number of cached templates.
func (tc *TemplateCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.items)
}

// Capacity returns the maximum number of cached templates.
func (tc *TemplateCache) Capacity() int {
	return tc.capacity
}

// Clear removes all entries.
func (tc *TemplateCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.ll.Init()
	tc.items = make(map[string]*list.Element, tc.capacity)
}

// Global template cache
var defaultTemplateCache = NewTemplateCache(DefaultCacheCapacity)

// Parse parses template through the package-level cache.
func Parse(template string) (*Node, error) {
	return defaultTemplateCache.Parse(template)
}
