package binding

type entry struct {
	index   int
	binding Binding
}

// Set is the ordered, immutable list of bindings derived for one method. Entries are
// applied in parameter order.
type Set struct {
	entries []entry
}

var empty = &Set{}

// Empty returns the shared set without bindings.
func Empty() *Set { return empty }

// IsEmpty reports whether applying the set would never write anything. Callers use it
// to skip per-call work.
func (s *Set) IsEmpty() bool { return s == nil || len(s.entries) == 0 }

// Len returns the number of bound parameters.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Indices returns the bound parameter indices in application order.
func (s *Set) Indices() []int {
	if s.IsEmpty() {
		return nil
	}
	out := make([]int, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.index
	}
	return out
}

// Apply writes the bound arguments into sink. Indices beyond args and null arguments
// are skipped. Apply only reads s, so one Set may be applied by many goroutines at once.
func (s *Set) Apply(sink Sink, args []any) {
	if s.IsEmpty() {
		return
	}
	for _, e := range s.entries {
		if e.index >= len(args) {
			continue
		}
		arg := args[e.index]
		if isNull(arg) {
			continue
		}
		e.binding(sink, arg)
	}
}

// builder accumulates entries in parameter order.
type builder struct {
	entries []entry
}

func (b *builder) add(index int, binding Binding) {
	b.entries = append(b.entries, entry{index: index, binding: binding})
}

func (b *builder) build() *Set {
	if len(b.entries) == 0 {
		return empty
	}
	return &Set{entries: b.entries}
}
