package mdexpand

import "strings"

// marker is one piece of a partitioned identifier/string payload: either
// a plain chunk or a balanced top-level "<…>" run (spec.md §4.7).
type marker struct {
	text    string
	bracket bool
}

// splitMarkers partitions s into plain chunks and "<…>" runs. Nesting is
// tracked (`<` increases depth, `>` decreases) so a run is exactly one
// top-level balanced group; an unbalanced trailing "<" is emitted as a
// plain chunk rather than silently dropped.
func splitMarkers(s string) []marker {
	var out []marker
	var cur strings.Builder
	depth := 0
	runStart := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '<':
			if depth == 0 {
				if cur.Len() > 0 {
					out = append(out, marker{text: cur.String()})
					cur.Reset()
				}
				runStart = i
			}
			depth++
		case c == '>' && depth > 0:
			depth--
			if depth == 0 {
				out = append(out, marker{text: s[runStart : i+1], bracket: true})
			}
		default:
			if depth == 0 {
				cur.WriteByte(c)
			}
		}
	}
	if depth > 0 {
		// Unbalanced "<": treat whatever never closed as plain text,
		// joined to the plain chunk right before it.
		if n := len(out); n > 0 && !out[n-1].bracket {
			cur.WriteString(out[n-1].text)
			out = out[:n-1]
		}
		cur.WriteString(s[runStart:])
	}
	if cur.Len() > 0 {
		out = append(out, marker{text: cur.String()})
	}
	return out
}

// splitLastUnbracketedColon splits an identifier's text on its last ':'
// that is not inside a "<…>" run, returning (prefix, mode, true), or
// (text, "", false) if there is no such colon.
func splitLastUnbracketedColon(s string) (prefix, mode string, ok bool) {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				last = i
			}
		}
	}
	if last < 0 {
		return s, "", false
	}
	return s[:last], s[last+1:], true
}

// fragmentParts splits the inside of a "<…>" run (brackets already
// stripped by the caller) into an optional ITOR and an ATTR name, per
// the "<ITOR:ATTR>" / "<ATTR>" grammar. ok is false if the content has
// more than one colon or isn't made of identifier characters, in which
// case it cannot be an attribute reference at all (spec.md §9: nesting
// beyond one level is rejected, here surfacing as "not a reference").
func fragmentParts(inner string) (itor, attr string, hasItor, ok bool) {
	colon := -1
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == ':' {
			if colon >= 0 {
				return "", "", false, false // more than one colon: reject
			}
			colon = i
			continue
		}
		if !(isLetter(c) || isDigit(c) || c == '_') {
			return "", "", false, false
		}
	}
	if colon < 0 {
		return "", inner, false, true
	}
	return inner[:colon], inner[colon+1:], true, true
}
