// Package mdexpand lexes, parses, and elaborates a Lisp-like
// machine-description (MD) source dialect.
//
// An MD file declares iterators (finite choice lists) and attributes
// (iterator-choice → substitution mappings). Any other top-level form that
// references an iterator is expanded into the cross-product of every
// iterator it depends on, with references substituted consistently per
// tuple. The package is domain-agnostic about what the forms mean: it
// performs lexical analysis, structural parsing, and iterator elaboration
// only. Interpreting specific forms (define_insn and friends) is left to
// a downstream consumer.
//
// A tiny example, elaborating one mode iterator over two forms:
//
//	src := `(define_mode_iterator M [SI DI]) (op:M x)`
//	forms, err := mdexpand.ElaborateString("<string>", src, ".", nil)
//	if err != nil {
//	    panic(err)
//	}
//	for _, f := range forms {
//	    fmt.Println(f.String())
//	}
//	// (define_mode_iterator M [SI DI])
//	// (op:SI x)
//	// (op:DI x)
package mdexpand
