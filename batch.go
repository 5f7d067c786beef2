package mdexpand

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

// BatchJob names one root MD file to elaborate, with an optional working
// directory override for include resolution.
type BatchJob struct {
	Name    string `yaml:"name"`
	Root    string `yaml:"root"`
	WorkDir string `yaml:"work_dir,omitempty"`
}

// BatchManifest is a YAML-described list of BatchJob entries, letting a
// driver elaborate many MD roots (e.g. one per target architecture) in
// one run without re-deriving a Registry per file unless IsolateRegistry
// is set.
type BatchManifest struct {
	// IsolateRegistry starts each job with a fresh Registry. When false
	// (the default) every job after the first inherits the accumulated
	// registry of the jobs before it, mirroring how a single compiler
	// invocation accrues iterator definitions across included files.
	IsolateRegistry bool       `yaml:"isolate_registry,omitempty"`
	Jobs            []BatchJob `yaml:"jobs"`
}

// LoadBatchManifest reads and parses a YAML batch manifest from path.
func LoadBatchManifest(path string) (*BatchManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading batch manifest %s", path)
	}
	var m BatchManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Annotatef(err, "parsing batch manifest %s", path)
	}
	return &m, nil
}

// BatchResult is the elaborated output of one BatchJob.
type BatchResult struct {
	Job   BatchJob
	Forms []Node
	Err   error
}

// Run elaborates every job in m relative to baseDir (the manifest's own
// directory, typically), returning one BatchResult per job in order. A
// failing job does not stop the batch; its Err field is populated and
// later jobs still run.
func (m *BatchManifest) Run(baseDir string) []BatchResult {
	e := NewElaborator()
	results := make([]BatchResult, 0, len(m.Jobs))
	for _, job := range m.Jobs {
		if m.IsolateRegistry {
			e.Registry = NewRegistry()
		}
		root := job.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(baseDir, root)
		}
		workDir := job.WorkDir
		if workDir != "" && !filepath.IsAbs(workDir) {
			workDir = filepath.Join(baseDir, workDir)
		}
		forms, err := e.Elaborate(root, workDir)
		if err != nil {
			logger.Errorf("batch job %q failed: %v", job.Name, err)
		}
		results = append(results, BatchResult{Job: job, Forms: forms, Err: err})
	}
	return results
}
