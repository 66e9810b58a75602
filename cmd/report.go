package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chazu/hypershape/internal/app"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// printReport writes the per-piece summary of r, followed by its warnings
// and errors. It reports whether r is free of errors.
func printReport(w io.Writer, source string, r app.Result) bool {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			printError(w, e)
		}
		fmt.Fprintf(w, red+bold+"✗ %s"+reset+" failed with %d error(s)\n", source, len(r.Errors))
		return false
	}

	fmt.Fprintf(w, bold+cyan+"%s"+reset+dim+" %dD, %d piece(s)"+reset+"\n", source, r.NDim, len(r.Pieces))
	for _, p := range r.Pieces {
		fmt.Fprintf(w, "  %-10s %-8s %-20s %s\n", p.Name, p.Ref, formatCounts(p.Counts), dim+shortFingerprint(p.Fingerprint)+reset)
	}
	for _, m := range r.Meshes {
		fmt.Fprintf(w, dim+"  mesh %s: %d vertices, %d triangles"+reset+"\n", m.PartName, len(m.Vertices)/3, len(m.Indices)/3)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, yellow+bold+"⚠ "+reset+"%s\n", warn.Message)
	}
	fmt.Fprintln(w, green+bold+"✓ ok"+reset)
	return true
}

func printError(w io.Writer, e app.EvalErrorData) {
	if e.Line > 0 {
		fmt.Fprintf(w, red+bold+"error: "+reset+"line %d:%d: %s\n", e.Line, e.Col, e.Message)
		return
	}
	fmt.Fprintf(w, red+bold+"error: "+reset+"%s\n", e.Message)
}

// formatCounts renders shape counts by dimension, highest first, e.g.
// "1c 6f 12e 12v" for a cube.
func formatCounts(counts []int) string {
	suffix := []string{"v", "e", "f", "c"}
	parts := make([]string, 0, len(counts))
	for d := len(counts) - 1; d >= 0; d-- {
		s := fmt.Sprintf("d%d", d)
		if d < len(suffix) {
			s = suffix[d]
		}
		parts = append(parts, fmt.Sprintf("%d%s", counts[d], s))
	}
	return strings.Join(parts, " ")
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
