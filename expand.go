package mdexpand

// tuple is one fully-resolved combination of choices, one per active
// iterator. order preserves the global insertion order (mode iterators
// first, then code, then int) so attribute lookups that must pick the
// "first" matching active iterator of a kind (spec.md §4.7) have a
// deterministic order to consult — a plain map would not.
type tuple struct {
	values map[*Iterator]Choice
	order  []*Iterator
}

func (t tuple) choiceFor(it *Iterator) (Choice, bool) {
	c, ok := t.values[it]
	return c, ok
}

// onlyOfKind returns the single active iterator of kind k in t, or
// ok=false if zero or more than one are active — the condition under
// which the <code>/<CODE>/<mode>/<MODE> builtin aliases are defined
// (spec.md §4.7).
func (t tuple) onlyOfKind(k Kind) (*Iterator, Choice, bool) {
	var found *Iterator
	for _, it := range t.order {
		if it.Kind != k {
			continue
		}
		if found != nil {
			return nil, Choice{}, false
		}
		found = it
	}
	if found == nil {
		return nil, Choice{}, false
	}
	c := t.values[found]
	return found, c, true
}

// firstMatchingOfKind returns the mapped value for the first (in
// insertion order) active iterator of kind k whose current choice value
// is present in a's mapping.
func (t tuple) firstMatchingOfKind(k Kind, a *Attribute) (string, bool) {
	for _, it := range t.order {
		if it.Kind != k {
			continue
		}
		c := t.values[it]
		if v, ok := a.Mapping[c.Value]; ok {
			return v, true
		}
	}
	return "", false
}

// expand produces one elaborated copy of form per combination in the
// cross product of every active iterator's choice list, in odometer
// order: the mode ring is exhausted fastest, then the code ring, then
// the int ring, and within a ring relative order matches insertion
// order (spec.md §4.6, §8 property 7).
func expand(registry *Registry, form Node) []Node {
	as := discover(registry, form)
	if as.empty() {
		return []Node{form}
	}

	// order is fastest-varying first: all mode iterators (insertion
	// order), then all code iterators, then all int iterators.
	order := make([]*Iterator, 0, len(as.Mode)+len(as.Code)+len(as.Int))
	order = append(order, as.Mode...)
	order = append(order, as.Code...)
	order = append(order, as.Int...)

	var tuples []tuple
	cur := map[*Iterator]Choice{}
	// Recurse from the slowest digit (last in order) down to the fastest
	// (first in order) so the fastest position is innermost and cycles
	// completely before any slower position advances.
	var build func(i int)
	build = func(i int) {
		if i < 0 {
			cp := make(map[*Iterator]Choice, len(cur))
			for k, v := range cur {
				cp[k] = v
			}
			tuples = append(tuples, tuple{values: cp, order: order})
			return
		}
		it := order[i]
		for _, c := range it.Choices {
			cur[it] = c
			build(i - 1)
		}
		delete(cur, it)
	}
	build(len(order) - 1)

	out := make([]Node, 0, len(tuples))
	for _, t := range tuples {
		out = append(out, substitute(registry, form, t))
	}
	return out
}
