package mdexpand

// activeSet is the set of iterators a single top-level form transitively
// references, grouped by kind and kept in first-seen (insertion) order —
// that order becomes the odometer's digit order in the expansion engine.
// Re-activating an already-active iterator is a no-op (spec.md §4.5:
// discovery is idempotent).
type activeSet struct {
	Mode []*Iterator
	Code []*Iterator
	Int  []*Iterator
	seen map[*Iterator]bool
}

func newActiveSet() *activeSet {
	return &activeSet{seen: map[*Iterator]bool{}}
}

func (as *activeSet) activate(it *Iterator) {
	if it == nil || as.seen[it] {
		return
	}
	as.seen[it] = true
	switch it.Kind {
	case KindMode:
		as.Mode = append(as.Mode, it)
	case KindCode:
		as.Code = append(as.Code, it)
	case KindInt:
		as.Int = append(as.Int, it)
	}
}

func (as *activeSet) empty() bool {
	return len(as.Mode) == 0 && len(as.Code) == 0 && len(as.Int) == 0
}

// discover walks n and populates an activeSet per spec.md §4.5.
func discover(registry *Registry, n Node) *activeSet {
	as := newActiveSet()
	var walk func(Node)
	walk = func(n Node) {
		switch n.Kind {
		case KindNumber, KindBad:
			return
		case KindString:
			activateMarkers(as, registry, n.Text)
		case KindIdentifier:
			prefix, mode, hasMode := splitLastUnbracketedColon(n.Text)
			if hasMode {
				if it, ok := registry.lookupIterator(KindMode, mode); ok {
					as.activate(it)
				}
			}
			if it, ok := registry.lookupIterator(KindCode, prefix); ok {
				as.activate(it)
			}
			activateMarkers(as, registry, prefix)
		case KindList, KindVector:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return as
}

// activateMarkers activates every iterator named directly by a "<…>" run
// found in s — both the bare ATTR name and, for "<ITOR:ATTR>", the ITOR
// name too — against all three iterator kinds. No attribute lookup is
// needed to activate: an attribute reference implies dependence on
// whichever iterator governs it, and which one that is gets resolved at
// substitution time (spec.md §4.5).
func activateMarkers(as *activeSet, registry *Registry, s string) {
	for _, m := range splitMarkers(s) {
		if !m.bracket {
			continue
		}
		inner := m.text[1 : len(m.text)-1]
		itor, attr, hasItor, ok := fragmentParts(inner)
		if !ok {
			continue
		}
		activateByName(as, registry, attr)
		if hasItor {
			activateByName(as, registry, itor)
		}
	}
}

func activateByName(as *activeSet, registry *Registry, name string) {
	if it, ok := registry.lookupIterator(KindMode, name); ok {
		as.activate(it)
	}
	if it, ok := registry.lookupIterator(KindCode, name); ok {
		as.activate(it)
	}
	if it, ok := registry.lookupIterator(KindInt, name); ok {
		as.activate(it)
	}
}
