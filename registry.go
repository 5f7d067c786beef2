package mdexpand

import "fmt"

// Kind distinguishes the three independent iterator/attribute namespaces.
type Kind int

const (
	KindMode Kind = iota
	KindCode
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindMode:
		return "mode"
	case KindCode:
		return "code"
	case KindInt:
		return "int"
	default:
		return "unknown"
	}
}

// Choice is one member of an Iterator's ordered value list.
type Choice struct {
	Value     string
	Condition string // empty when no side condition was given
}

// Iterator is a named finite choice list, e.g. (define_mode_iterator M
// [SI DI]).
type Iterator struct {
	Name    string
	Kind    Kind
	Choices []Choice
}

// Attribute maps an iterator choice value to a substitution string, e.g.
// (define_mode_attr sfx [(SI "w") (DI "q")]).
type Attribute struct {
	Name    string
	Kind    Kind
	Mapping map[string]string
	// Order preserves source order for diagnostics; not needed for
	// lookup correctness since Mapping keys are unique per iterator kind.
	Order []string
}

// Registry accumulates iterator and attribute definitions discovered
// while elaborating a file (and any files it includes). Registry is
// passed by pointer and threaded explicitly through the pipeline rather
// than kept as hidden package state, per spec.md §9.
type Registry struct {
	ModeIterators map[string]*Iterator
	CodeIterators map[string]*Iterator
	IntIterators  map[string]*Iterator
	ModeAttrs     map[string]*Attribute
	CodeAttrs     map[string]*Attribute
	IntAttrs      map[string]*Attribute
}

// NewRegistry returns an empty Registry with all six tables initialized.
func NewRegistry() *Registry {
	return &Registry{
		ModeIterators: map[string]*Iterator{},
		CodeIterators: map[string]*Iterator{},
		IntIterators:  map[string]*Iterator{},
		ModeAttrs:     map[string]*Attribute{},
		CodeAttrs:     map[string]*Attribute{},
		IntAttrs:      map[string]*Attribute{},
	}
}

func (r *Registry) iterators(k Kind) map[string]*Iterator {
	switch k {
	case KindMode:
		return r.ModeIterators
	case KindCode:
		return r.CodeIterators
	default:
		return r.IntIterators
	}
}

func (r *Registry) attrs(k Kind) map[string]*Attribute {
	switch k {
	case KindMode:
		return r.ModeAttrs
	case KindCode:
		return r.CodeAttrs
	default:
		return r.IntAttrs
	}
}

func (r *Registry) lookupIterator(k Kind, name string) (*Iterator, bool) {
	it, ok := r.iterators(k)[name]
	return it, ok
}

func (r *Registry) lookupAttr(k Kind, name string) (*Attribute, bool) {
	a, ok := r.attrs(k)[name]
	return a, ok
}

// findIteratorAnyKind looks up name against mode, then code, then int
// iterators, returning the first match (spec.md §4.7's qualifier
// resolution order for "<ITOR:ATTR>").
func (r *Registry) findIteratorAnyKind(name string) (*Iterator, bool) {
	if it, ok := r.ModeIterators[name]; ok {
		return it, true
	}
	if it, ok := r.CodeIterators[name]; ok {
		return it, true
	}
	if it, ok := r.IntIterators[name]; ok {
		return it, true
	}
	return nil, false
}

// String renders a debug dump of all six tables, supplementing the
// reference reader's dump_all_itors helper.
func (r *Registry) String() string {
	return fmt.Sprintf(
		"mode_iterators=%v\nmode_attrs=%v\ncode_iterators=%v\ncode_attrs=%v\nint_iterators=%v\nint_attrs=%v",
		names(r.ModeIterators), names(r.ModeAttrs),
		names(r.CodeIterators), names(r.CodeAttrs),
		names(r.IntIterators), names(r.IntAttrs),
	)
}

func names[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
