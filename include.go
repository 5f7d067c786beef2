package mdexpand

import (
	"path/filepath"

	"github.com/juju/errors"
)

// Loader reads the bytes of a source file named by path. The elaborator
// never touches the filesystem directly; callers supply a Loader so
// include resolution stays testable against in-memory fixtures
// (spec.md §6).
type Loader func(path string) ([]byte, error)

// includeForm reports whether form is a recognized "(include ...)" form
// and, if so, extracts the requested paths.
func includeForm(form Node) (paths []string, ok bool) {
	head, hasHead := form.Head()
	if !hasHead || head != "include" {
		return nil, false
	}
	if len(form.Children) != 2 {
		return nil, false
	}
	arg := form.Children[1]
	switch arg.Kind {
	case KindString:
		return []string{arg.Text}, true
	case KindList, KindVector:
		for _, c := range arg.Children {
			if c.Kind != KindString {
				return nil, false
			}
			paths = append(paths, c.Text)
		}
		return paths, true
	default:
		return nil, false
	}
}

// includeCycleError reports a path that is already on the current
// include stack, i.e. a cycle.
func includeCycleError(path string) error {
	return newError(SenderInclude, path, 0, 0, nil, "include cycle detected at %s", path)
}

// processInclude loads and elaborates every path named by an include
// form, in order, appending their output to out. stack holds the
// absolute paths currently being processed (for cycle detection);
// workDir is the base directory new relative paths are resolved
// against.
func (e *Elaborator) processInclude(workDir string, paths []string, stack map[string]bool, out *[]Node) error {
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(full) {
			full = filepath.Join(workDir, p)
		}
		if abs, err := filepath.Abs(full); err == nil {
			full = abs
		}
		if stack[full] {
			return includeCycleError(full)
		}
		data, err := e.Load(full)
		if err != nil {
			return errors.Annotatef(err, "include %s", full)
		}
		forms, err := parseSource(full, data)
		if err != nil {
			return errors.Trace(err)
		}
		stack[full] = true
		// Every include, at any nesting depth, resolves relative paths
		// against the same workDir — not the including file's own
		// directory — matching the original reader's single fixed
		// working_dir (see DESIGN.md).
		for _, form := range forms {
			if err := e.elaborateForm(workDir, form, stack, out); err != nil {
				delete(stack, full)
				return errors.Trace(err)
			}
		}
		delete(stack, full)
	}
	return nil
}
