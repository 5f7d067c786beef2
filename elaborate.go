package mdexpand

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
)

// Elaborator runs the top-level elaborate loop of spec.md §4.8. It is
// stateless between top-level forms except for the Registry and the
// working directory used to resolve include paths.
type Elaborator struct {
	Registry *Registry

	// Load reads the bytes of a source file. NewElaborator sets it to
	// os.ReadFile; a nil Load is not replaced by any default.
	Load Loader
}

// NewElaborator returns an Elaborator with a fresh Registry and a Loader
// backed by the real filesystem.
func NewElaborator() *Elaborator {
	return &Elaborator{
		Registry: NewRegistry(),
		Load:     func(path string) ([]byte, error) { return os.ReadFile(path) },
	}
}

// Elaborate reads rootFile, resolves workDir (defaulting to rootFile's
// directory when empty), and returns the fully elaborated stream of
// top-level forms.
func (e *Elaborator) Elaborate(rootFile, workDir string) ([]Node, error) {
	data, err := e.Load(rootFile)
	if err != nil {
		return nil, errors.Annotatef(err, "reading %s", rootFile)
	}
	if workDir == "" {
		workDir = filepath.Dir(rootFile)
	}
	return e.ElaborateBytes(rootFile, data, workDir)
}

// ElaborateBytes parses filename/data and elaborates the resulting forms
// against workDir.
func (e *Elaborator) ElaborateBytes(filename string, data []byte, workDir string) ([]Node, error) {
	forms, err := parseSource(filename, data)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var out []Node
	stack := map[string]bool{}
	if abs, err := filepath.Abs(filename); err == nil {
		stack[abs] = true
	}
	for _, form := range forms {
		if err := e.elaborateForm(workDir, form, stack, &out); err != nil {
			return nil, errors.Trace(err)
		}
	}
	logger.Tracef("elaborated %s: %d forms, registry:\n%s", filename, len(out), e.Registry)
	return out, nil
}

// elaborateForm dispatches one top-level form per spec.md §4.8.
func (e *Elaborator) elaborateForm(workDir string, form Node, stack map[string]bool, out *[]Node) error {
	head, hasHead := form.Head()
	if !hasHead {
		*out = append(*out, Bad("top-level form must be a non-empty list starting with an identifier", form))
		return nil
	}

	if head == "include" {
		paths, ok := includeForm(form)
		if !ok {
			*out = append(*out, elabBadIncludeForm(form))
			return nil
		}
		return e.processInclude(workDir, paths, stack, out)
	}

	if isDefineForm(head) {
		logger.Debugf("define %s", head)
		*out = append(*out, applyDefine(e.Registry, workDir, form))
		return nil
	}

	*out = append(*out, expand(e.Registry, form)...)
	return nil
}

func elabBadIncludeForm(form Node) Node {
	return Bad("malformed include form: expects a single string or list/vector of strings", form)
}

// ElaborateString is a convenience wrapper over ElaborateBytes for
// callers working with in-memory source, e.g. tests and REPL-style use.
func ElaborateString(filename, src, workDir string, load Loader) ([]Node, error) {
	e := NewElaborator()
	if load != nil {
		e.Load = load
	}
	return e.ElaborateBytes(filename, []byte(src), workDir)
}
