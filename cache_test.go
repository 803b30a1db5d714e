package anki

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCache_Parse(t *testing.T) {
	tc := NewTemplateCache(4)

	first, err := tc.Parse("{{#A}}{{A}}{{/A}}")
	require.NoError(t, err)
	second, err := tc.Parse("{{#A}}{{A}}{{/A}}")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, tc.Len())
}

func TestTemplateCache_CachesErrors(t *testing.T) {
	tc := NewTemplateCache(4)

	node, err1 := tc.Parse("{{#A}}")
	assert.Nil(t, node)
	require.Error(t, err1)

	_, err2 := tc.Parse("{{#A}}")
	assert.Same(t, err1, err2)

	res, ok := tc.Get("{{#A}}")
	require.True(t, ok)
	assert.Nil(t, res.Node)
	assert.Same(t, err1, res.Err)
}

func TestTemplateCache_Eviction(t *testing.T) {
	tc := NewTemplateCache(2)

	_, _ = tc.Parse("a")
	_, _ = tc.Parse("b")
	// Touch "a" so that "b" becomes the least recently used entry.
	_, ok := tc.Get("a")
	require.True(t, ok)
	_, _ = tc.Parse("c")

	assert.Equal(t, 2, tc.Len())
	_, ok = tc.Get("a")
	assert.True(t, ok, "recently used entry was evicted")
	_, ok = tc.Get("b")
	assert.False(t, ok, "least recently used entry was kept")
	_, ok = tc.Get("c")
	assert.True(t, ok)
}

func TestTemplateCache_DefaultCapacityAndClear(t *testing.T) {
	tc := NewTemplateCache(0)
	assert.Equal(t, DefaultCacheCapacity, tc.Capacity())

	_, _ = tc.Parse("{{Front}}")
	tc.Clear()
	assert.Equal(t, 0, tc.Len())
	_, ok := tc.Get("{{Front}}")
	assert.False(t, ok)
}

func TestTemplateCache_Concurrent(t *testing.T) {
	tc := NewTemplateCache(8)
	templates := make([]string, 16)
	for i := range templates {
		templates[i] = fmt.Sprintf("{{#F%[1]d}}{{F%[1]d}}{{/F%[1]d}}", i%4)
	}

	var wg sync.WaitGroup
	results := make([]*Node, len(templates)*8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			node, err := tc.Parse(templates[i%len(templates)])
			if err == nil {
				results[i] = node
			}
		}(i)
	}
	wg.Wait()

	for i, node := range results {
		require.NotNil(t, node, "parse %d failed", i)
		want, _ := tc.Parse(templates[i%len(templates)])
		assert.Same(t, want, node)
	}
	assert.Equal(t, 4, tc.Len())
}
