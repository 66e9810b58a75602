package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/hypershape/pkg/cutlist"
)

var buildCmd = &cobra.Command{
	Use:   "build <cuts.toml>",
	Short: "Apply a cut list and print its pieces",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().Bool("tree", false, "print the boundary tree of every piece")
	buildCmd.Flags().Bool("watch", false, "rebuild whenever the cut list changes")
	buildCmd.Flags().Bool("check", false, "only validate the cut list")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := args[0]
	if check, _ := cmd.Flags().GetBool("check"); check {
		return checkCutList(path)
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

// checkCutList validates path without cutting anything.
func checkCutList(path string) error {
	cl, err := cutlist.Load(path)
	if errors.Is(err, cutlist.ErrNoManifest) {
		return fmt.Errorf("%s: no such cut list", path)
	}
	if err != nil {
		return err
	}

	errs := cl.Validate()
	for _, e := range errs {
		fmt.Fprintf(os.Stdout, red+bold+"error: "+reset+"%s\n", e.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	fmt.Fprintf(os.Stdout, green+bold+"✓ %s"+reset+dim+" %dD, %d cut(s)"+reset+"\n", cl.Name, cl.NDim, len(cl.Cuts))
	return nil
}
