// Package bindcache memoizes binding sets per traced method.
//
// Entries are grouped by declaring class. The cache only refers to a class through a
// weak pointer, and the group of a class is dropped once the class descriptor is
// garbage collected, so cached bindings never outlive the class they were built for.
package bindcache

import (
	"runtime"
	"sync"
	"weak"

	"github.com/navikt/otel-argbind/binding"
	"github.com/navikt/otel-argbind/metrics"
	"github.com/navikt/otel-argbind/typegraph"
)

// Cache is safe for concurrent use. The zero value is ready to use.
type Cache struct {
	groups sync.Map // map[weak.Pointer[typegraph.Class]]*group
	// unowned holds methods without a declaring class for the life of the process.
	unowned group
}

// group holds the binding sets of one declaring class, keyed by method signature.
// Nothing in a group points back at the class.
type group struct {
	methods sync.Map // map[string]*binding.Set
}

type groupRef struct {
	key   weak.Pointer[typegraph.Class]
	group *group
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

func (c *Cache) lookupGroup(class *typegraph.Class) *group {
	if class == nil {
		return &c.unowned
	}
	if g, ok := c.groups.Load(weak.Make(class)); ok {
		return g.(*group)
	}
	return nil
}

func (c *Cache) groupFor(class *typegraph.Class) *group {
	if g := c.lookupGroup(class); g != nil {
		return g
	}
	key := weak.Make(class)
	g := &group{}
	actual, loaded := c.groups.LoadOrStore(key, g)
	if loaded {
		return actual.(*group)
	}
	metrics.RecordCacheGroupAdded()
	runtime.AddCleanup(class, c.collect, groupRef{key: key, group: g})
	return g
}

// collect runs once a declaring class is unreachable.
func (c *Cache) collect(ref groupRef) {
	if c.groups.CompareAndDelete(ref.key, ref.group) {
		metrics.RecordCacheEviction("collected")
	}
}

// Get returns the cached set of m.
func (c *Cache) Get(m *binding.Method) (*binding.Set, bool) {
	g := c.lookupGroup(m.Declaring)
	if g == nil {
		return nil, false
	}
	v, ok := g.methods.Load(m.Signature())
	if !ok {
		return nil, false
	}
	return v.(*binding.Set), true
}

// Put stores set for m, replacing any previous entry.
func (c *Cache) Put(m *binding.Method, set *binding.Set) {
	c.groupFor(m.Declaring).methods.Store(m.Signature(), set)
}

// Remove drops the entry of m.
func (c *Cache) Remove(m *binding.Method) {
	if g := c.lookupGroup(m.Declaring); g != nil {
		g.methods.Delete(m.Signature())
	}
}

// ComputeIfAbsent returns the cached set of m, calling bind on a miss. Concurrent first
// calls may each run bind, but only the first stored result is kept and every caller
// receives it.
func (c *Cache) ComputeIfAbsent(m *binding.Method, bind func(*binding.Method) *binding.Set) *binding.Set {
	g := c.groupFor(m.Declaring)
	sig := m.Signature()
	if v, ok := g.methods.Load(sig); ok {
		metrics.RecordCacheLookup(true)
		return v.(*binding.Set)
	}
	metrics.RecordCacheLookup(false)
	actual, _ := g.methods.LoadOrStore(sig, bind(m))
	return actual.(*binding.Set)
}

// Bindings returns the bindings of m, binding it with b on first use. Entries do not
// record the binder that built them, so a cache must only ever be used with one binder.
func (c *Cache) Bindings(m *binding.Method, b *binding.Binder) *binding.Set {
	return c.ComputeIfAbsent(m, b.Bind)
}

// Evict drops every entry of class at once. It is the hook for classes whose
// descriptors are retired explicitly instead of being garbage collected. A nil class
// clears the methods without a declaring class.
func (c *Cache) Evict(class *typegraph.Class) {
	if class == nil {
		c.unowned.methods.Clear()
		return
	}
	if _, loaded := c.groups.LoadAndDelete(weak.Make(class)); loaded {
		metrics.RecordCacheEviction("explicit")
	}
}

// Len returns the number of cached methods.
func (c *Cache) Len() int {
	n := countMethods(&c.unowned)
	c.groups.Range(func(_, g any) bool {
		n += countMethods(g.(*group))
		return true
	})
	return n
}

// Classes returns the number of declaring classes with a group.
func (c *Cache) Classes() int {
	n := 0
	c.groups.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func countMethods(g *group) int {
	n := 0
	g.methods.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
