package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var meshCmd = &cobra.Command{
	Use:   "mesh <file>",
	Short: "Tessellate the pieces of a 3D script or cut list to JSON",
	Long: "Mesh evaluates a cut script (.zy) or cut list (.toml), meshes every piece\n" +
		"and writes the pieces, meshes, errors and warnings as JSON.",
	Args: cobra.ExactArgs(1),
	RunE: runMesh,
}

func init() {
	meshCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	meshCmd.Flags().Int("cells", 0, "marching cubes cells along the longest axis")
	meshCmd.Flags().Int("workers", 0, "pieces meshed concurrently")
	meshCmd.Flags().Float64("explode", 0, "push pieces away from the origin by this factor")
	meshCmd.Flags().Bool("indent", false, "indent the JSON output")

	_ = viper.BindPFlag("mesh.cells", meshCmd.Flags().Lookup("cells"))
	_ = viper.BindPFlag("mesh.workers", meshCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("mesh.explode", meshCmd.Flags().Lookup("explode"))

	rootCmd.AddCommand(meshCmd)
}

func runMesh(cmd *cobra.Command, args []string) error {
	path := args[0]
	a := newApp()

	ctx, cancel := setupSignalContext()
	defer cancel()

	r, err := evaluateFile(ctx, a, path, true)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if indent, _ := cmd.Flags().GetBool("indent"); indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing meshes: %w", err)
	}

	for _, e := range r.Errors {
		printError(os.Stderr, e)
	}
	if len(r.Errors) > 0 {
		return fmt.Errorf("%s: %d error(s)", path, len(r.Errors))
	}
	logger.Info("meshed", "file", path, "pieces", len(r.Pieces), "meshes", len(r.Meshes))
	return nil
}
