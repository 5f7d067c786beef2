package mdexpand

import "testing"

func registryWith(t *testing.T, src string) *Registry {
	t.Helper()
	registry := NewRegistry()
	forms, err := parseSource("t", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range forms {
		if head, ok := f.Head(); ok && isDefineForm(head) {
			if out := applyDefine(registry, "t", f); out.Kind == KindBad {
				t.Fatalf("bad define: %s", out)
			}
		}
	}
	return registry
}

func TestDiscoverModeSuffix(t *testing.T) {
	registry := registryWith(t, `(define_mode_iterator M [SI DI])`)
	forms, _ := parseSource("t", []byte(`(op:M x)`))
	as := discover(registry, forms[0])
	if len(as.Mode) != 1 || as.Mode[0].Name != "M" {
		t.Fatalf("got %v", as.Mode)
	}
	if len(as.Code) != 0 || len(as.Int) != 0 {
		t.Fatalf("only M should be active: %+v", as)
	}
}

func TestDiscoverCodePrefix(t *testing.T) {
	registry := registryWith(t, `(define_code_iterator C [plus minus])`)
	forms, _ := parseSource("t", []byte(`(C:SI x)`))
	as := discover(registry, forms[0])
	if len(as.Code) != 1 || as.Code[0].Name != "C" {
		t.Fatalf("got %v", as.Code)
	}
}

func TestDiscoverAttributeReferenceInString(t *testing.T) {
	registry := registryWith(t, `
		(define_mode_iterator M [SI DI])
		(define_mode_attr sfx [(SI "w") (DI "q")])
	`)
	forms, _ := parseSource("t", []byte(`(op "mov<sfx>")`))
	as := discover(registry, forms[0])
	if len(as.Mode) != 1 || as.Mode[0].Name != "M" {
		t.Fatalf("expected M activated transitively through sfx, got %+v", as)
	}
}

func TestDiscoverQualifiedAttributeReference(t *testing.T) {
	registry := registryWith(t, `
		(define_mode_iterator M [SI DI])
		(define_mode_attr w [(SI "4") (DI "8")])
	`)
	forms, _ := parseSource("t", []byte(`(foo "<M:w>")`))
	as := discover(registry, forms[0])
	if len(as.Mode) != 1 || as.Mode[0].Name != "M" {
		t.Fatalf("got %+v", as)
	}
}

func TestDiscoverNoMarkersIsEmpty(t *testing.T) {
	registry := registryWith(t, `(define_mode_iterator M [SI DI])`)
	forms, _ := parseSource("t", []byte(`(foo 1 "bar")`))
	as := discover(registry, forms[0])
	if !as.empty() {
		t.Fatalf("expected no active iterators, got %+v", as)
	}
}

func TestDiscoverRecursesIntoNestedLists(t *testing.T) {
	registry := registryWith(t, `(define_mode_iterator M [SI DI])`)
	forms, _ := parseSource("t", []byte(`(outer (inner (op:M x)))`))
	as := discover(registry, forms[0])
	if len(as.Mode) != 1 {
		t.Fatalf("got %+v", as)
	}
}

func TestDiscoverIsIdempotent(t *testing.T) {
	registry := registryWith(t, `(define_mode_iterator M [SI DI])`)
	forms, _ := parseSource("t", []byte(`(op:M (op:M (op:M x)))`))
	as := discover(registry, forms[0])
	if len(as.Mode) != 1 {
		t.Fatalf("re-activation should not duplicate, got %+v", as)
	}
}

func TestDiscoverBareSubstringIsNotActivation(t *testing.T) {
	// An identifier that merely contains an iterator's name as a substring
	// (not inside "<…>", not as a code-prefix or mode-suffix) must not
	// activate it.
	registry := registryWith(t, `(define_code_iterator C [plus minus])`)
	forms, _ := parseSource("t", []byte(`(use_C_somehow x)`))
	as := discover(registry, forms[0])
	if !as.empty() {
		t.Fatalf("expected no activation from a bare substring, got %+v", as)
	}
}
