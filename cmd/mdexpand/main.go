// Command mdexpand lexes, parses, and elaborates a machine-description
// source file, printing the fully expanded top-level forms.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mdtools/mdexpand"
)

var (
	workDir      string
	batchFile    string
	dumpRegistry bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mdexpand ROOT_FILE [WORKING_DIR]",
	Short: "Elaborate a machine-description source file's iterator macros",
	Long: `mdexpand reads a machine-description file written in a Lisp-like
S-expression dialect, resolves its define_*_iterator / define_*_attr
layer, and prints the fully expanded stream of top-level forms.`,
	Args: cobra.MaximumNArgs(2),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&batchFile, "batch", "", "run a YAML batch manifest instead of a single root file")
	rootCmd.Flags().BoolVar(&dumpRegistry, "dump-registry", false, "print the final iterator/attribute registry to stderr")
}

func run(cmd *cobra.Command, args []string) error {
	stderr := errWriter()

	if batchFile != "" {
		return runBatch(stderr)
	}

	if len(args) == 0 {
		return fmt.Errorf("ROOT_FILE is required unless --batch is given")
	}
	root := args[0]
	if len(args) == 2 {
		workDir = args[1]
	}

	e := mdexpand.NewElaborator()
	forms, err := e.Elaborate(root, workDir)
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("error: %v", err))
		return err
	}
	for _, f := range forms {
		fmt.Println(f.String())
	}
	if dumpRegistry {
		fmt.Fprintln(stderr, color.CyanString("registry:"))
		fmt.Fprintln(stderr, e.Registry.String())
	}
	return nil
}

func runBatch(stderr io.Writer) error {
	manifest, err := mdexpand.LoadBatchManifest(batchFile)
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("error: %v", err))
		return err
	}
	baseDir := workDir
	if baseDir == "" {
		baseDir = "."
	}
	results := manifest.Run(baseDir)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintln(stderr, color.RedString("job %s: %v", r.Job.Name, r.Err))
			continue
		}
		fmt.Fprintln(stderr, color.GreenString("job %s: %d forms", r.Job.Name, len(r.Forms)))
		for _, f := range r.Forms {
			fmt.Println(f.String())
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d batch job(s) failed", failed)
	}
	return nil
}

// errWriter returns a console-aware stderr writer: ANSI escapes get
// translated on Windows consoles that don't understand them natively,
// and are suppressed entirely when stderr isn't a terminal.
func errWriter() io.Writer {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}
	return colorable.NewColorableStderr()
}
