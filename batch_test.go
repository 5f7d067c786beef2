package mdexpand

import (
	"os"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadBatchManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/manifest.yaml", `
isolate_registry: true
jobs:
  - name: arm
    root: arm.md
  - name: x86
    root: x86.md
    work_dir: x86inc
`)
	m, err := LoadBatchManifest(dir + "/manifest.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsolateRegistry {
		t.Fatal("expected isolate_registry: true to parse")
	}
	if len(m.Jobs) != 2 {
		t.Fatalf("got %d jobs", len(m.Jobs))
	}
	if m.Jobs[1].WorkDir != "x86inc" {
		t.Fatalf("got work_dir %q", m.Jobs[1].WorkDir)
	}
}

func TestBatchManifestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/arm.md", `(define_mode_iterator M [SI DI]) (op:M x)`)
	writeFile(t, dir+"/x86.md", `(foo 1)`)

	m := &BatchManifest{
		Jobs: []BatchJob{
			{Name: "arm", Root: "arm.md"},
			{Name: "x86", Root: "x86.md"},
		},
	}
	results := m.Run(dir)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("arm job failed: %v", results[0].Err)
	}
	if len(results[0].Forms) != 3 {
		t.Fatalf("arm job: got %d forms", len(results[0].Forms))
	}
	if results[1].Err != nil {
		t.Fatalf("x86 job failed: %v", results[1].Err)
	}
	if len(results[1].Forms) != 1 {
		t.Fatalf("x86 job: got %d forms", len(results[1].Forms))
	}
}

func TestBatchManifestIsolateRegistry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/a.md", `(define_mode_iterator M [SI DI])`)
	writeFile(t, dir+"/b.md", `(op:M x)`)

	shared := &BatchManifest{Jobs: []BatchJob{{Name: "a", Root: "a.md"}, {Name: "b", Root: "b.md"}}}
	sharedResults := shared.Run(dir)
	if len(sharedResults[1].Forms) != 2 {
		t.Fatalf("expected M to carry over into job b, got %d forms", len(sharedResults[1].Forms))
	}

	isolated := &BatchManifest{IsolateRegistry: true, Jobs: []BatchJob{{Name: "a", Root: "a.md"}, {Name: "b", Root: "b.md"}}}
	isolatedResults := isolated.Run(dir)
	if len(isolatedResults[1].Forms) != 1 {
		t.Fatalf("expected M to NOT carry over with IsolateRegistry, got %d forms", len(isolatedResults[1].Forms))
	}
}
