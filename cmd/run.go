package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script.zy>",
	Short: "Evaluate a cut script and print its pieces",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("tree", false, "print the boundary tree of every piece")
	runCmd.Flags().Bool("watch", false, "re-evaluate whenever the script changes")
	runCmd.Flags().Duration("timeout", 0, "override the evaluation timeout")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return fmt.Errorf("%s looks like a cut list; use `hypershape build`", path)
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Eval.Timeout = v
	}
	tree, _ := cmd.Flags().GetBool("tree")
	a := newApp()

	ctx, cancel := setupSignalContext()
	defer cancel()

	report := func() error { return reportFile(ctx, os.Stdout, a, path, tree) }
	if w, _ := cmd.Flags().GetBool("watch"); w {
		return watchFile(ctx, path, report)
	}
	return report()
}
