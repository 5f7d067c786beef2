package mdexpand

import "testing"

func TestElaborateDefineFormsPassThroughUnchanged(t *testing.T) {
	forms := elaborateAll(t, `(define_mode_iterator M [SI DI])`)
	if len(forms) != 1 {
		t.Fatalf("got %d forms", len(forms))
	}
	want := `(define_mode_iterator M [SI DI])`
	if forms[0].String() != want {
		t.Fatalf("got %s, want %s", forms[0], want)
	}
}

func TestElaborateRegistryAccumulatesAcrossForms(t *testing.T) {
	e := NewElaborator()
	_, err := e.ElaborateBytes("t", []byte(`
		(define_mode_iterator M [SI DI])
		(define_mode_attr sfx [(SI "w") (DI "q")])
		(op:M "mov<sfx>")
	`), ".")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Registry.lookupIterator(KindMode, "M"); !ok {
		t.Fatal("M missing from registry after elaboration")
	}
	if _, ok := e.Registry.lookupAttr(KindMode, "sfx"); !ok {
		t.Fatal("sfx missing from registry after elaboration")
	}
}

func TestElaborateUnknownHeadIsNotSpecial(t *testing.T) {
	forms := elaborateAll(t, `(define_insn "foo" [(set (match_operand:SI 0 "" "") (const_int 0))])`)
	if len(forms) != 1 {
		t.Fatalf("got %d forms", len(forms))
	}
}

func TestElaborateLexErrorPropagates(t *testing.T) {
	if _, err := ElaborateString("t", `(foo "unterminated)`, ".", nil); err == nil {
		t.Fatal("expected a lex error to propagate")
	}
}

func TestElaborateParseErrorPropagates(t *testing.T) {
	if _, err := ElaborateString("t", `(foo`, ".", nil); err == nil {
		t.Fatal("expected a parse error to propagate")
	}
}

func TestElaborateHeadlessTopLevelFormYieldsBad(t *testing.T) {
	forms := elaborateAll(t, `() (1 2 3)`)
	if len(forms) != 2 {
		t.Fatalf("got %d forms", len(forms))
	}
	for _, f := range forms {
		if f.Kind != KindBad {
			t.Errorf("expected a Bad node, got %s", f)
		}
	}
}
