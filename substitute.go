package mdexpand

import "strings"

// substitute produces a structural copy of n under the fixed iterator
// tuple t, rewriting identifiers and strings per spec.md §4.7. Number
// nodes are returned unchanged; List/Vector recurse.
func substitute(registry *Registry, n Node, t tuple) Node {
	switch n.Kind {
	case KindNumber, KindBad:
		return n
	case KindIdentifier:
		return Identifier(substituteIdentifierText(registry, n.Text, t))
	case KindString:
		text := substituteTemplate(registry, n.Text, t)
		if n.Raw {
			return RawString(text)
		}
		return String(text)
	case KindList:
		return List(substituteChildren(registry, n.Children, t)...)
	case KindVector:
		return Vector(substituteChildren(registry, n.Children, t)...)
	default:
		return n
	}
}

func substituteChildren(registry *Registry, children []Node, t tuple) []Node {
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = substitute(registry, c, t)
	}
	return out
}

// substituteIdentifierText rewrites one identifier payload per §4.7:
// split into (prefix, mode?) on the last unbracketed ':'; the prefix is
// either a code-iterator name (replaced with its current choice) or a
// template string (rewritten by substituteTemplate); the mode is either
// a mode-iterator name (replaced), a "<…>" attribute reference
// (resolved), or passed through unchanged.
func substituteIdentifierText(registry *Registry, text string, t tuple) string {
	prefix, mode, hasMode := splitLastUnbracketedColon(text)

	var newPrefix string
	if it, ok := registry.lookupIterator(KindCode, prefix); ok {
		if c, ok := t.choiceFor(it); ok {
			newPrefix = c.Value
		} else {
			newPrefix = prefix
		}
	} else {
		newPrefix = substituteTemplate(registry, prefix, t)
	}

	if !hasMode {
		return newPrefix
	}

	newMode := mode
	if it, ok := registry.lookupIterator(KindMode, mode); ok {
		if c, ok := t.choiceFor(it); ok {
			newMode = c.Value
		}
	} else if strings.HasPrefix(mode, "<") && strings.HasSuffix(mode, ">") && len(mode) >= 2 {
		if v, ok := resolveAttrRef(registry, mode[1:len(mode)-1], t); ok {
			newMode = v
		}
	}
	return newPrefix + ":" + newMode
}

// substituteTemplate rewrites every "<…>" run found in s via
// resolveAttrRef, leaving plain chunks and unresolved fragments as-is.
func substituteTemplate(registry *Registry, s string, t tuple) string {
	markers := splitMarkers(s)
	if len(markers) == 0 {
		return s
	}
	var b strings.Builder
	for _, m := range markers {
		if !m.bracket {
			b.WriteString(m.text)
			continue
		}
		inner := m.text[1 : len(m.text)-1]
		if v, ok := resolveAttrRef(registry, inner, t); ok {
			b.WriteString(v)
		} else {
			b.WriteString(m.text) // identity: leave the fragment as-is
		}
	}
	return b.String()
}

// resolveAttrRef resolves the inside of one "<…>" run (brackets already
// stripped) against registry and the current tuple, per spec.md §4.7.
func resolveAttrRef(registry *Registry, inner string, t tuple) (string, bool) {
	itor, attr, hasItor, ok := fragmentParts(inner)
	if !ok {
		return "", false
	}

	if hasItor {
		it, ok := registry.findIteratorAnyKind(itor)
		if !ok {
			return "", false
		}
		a, ok := registry.lookupAttr(it.Kind, attr)
		if !ok {
			return "", false
		}
		c, ok := t.choiceFor(it)
		if !ok {
			return "", false
		}
		v, ok := a.Mapping[c.Value]
		return v, ok
	}

	switch attr {
	case "code":
		return builtinAlias(t, KindCode, false)
	case "CODE":
		return builtinAlias(t, KindCode, true)
	case "mode":
		return builtinAlias(t, KindMode, false)
	case "MODE":
		return builtinAlias(t, KindMode, true)
	}

	for _, k := range [3]Kind{KindMode, KindCode, KindInt} {
		a, ok := registry.lookupAttr(k, attr)
		if !ok {
			continue
		}
		if v, ok := t.firstMatchingOfKind(k, a); ok {
			return v, true
		}
	}
	return "", false
}

// builtinAlias implements <code>/<CODE>/<mode>/<MODE>: only defined
// when exactly one iterator of the relevant kind is active in t
// (spec.md §4.7); otherwise the reference degrades to identity.
func builtinAlias(t tuple, k Kind, upper bool) (string, bool) {
	_, c, ok := t.onlyOfKind(k)
	if !ok {
		return "", false
	}
	if upper {
		return strings.ToUpper(c.Value), true
	}
	return strings.ToLower(c.Value), true
}
