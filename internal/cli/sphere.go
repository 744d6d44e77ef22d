package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stipple/internal/export"
	"github.com/jmylchreest/stipple/internal/geometry"
)

var (
	// Sphere command flags
	sphereCount  int
	sphereRadius float64
	sphereOutput string
	spherePretty bool
)

// sphereCmd represents the sphere command
var sphereCmd = &cobra.Command{
	Use:   "sphere",
	Short: "Generate a deterministic sphere point cloud",
	Long: `Generate points evenly distributed on a sphere using a golden-angle
spiral. This is the same distribution the points command falls back to
when an image cannot be analysed, exposed directly for renderer testing.

Examples:
  # 20000 points on a unit sphere
  stipple sphere

  # A smaller cloud at radius 3, written to a file
  stipple sphere -n 500 --radius 3 -o sphere.json`,
	Args: cobra.NoArgs,
	RunE: runSphere,
}

func init() {
	sphereCmd.Flags().IntVarP(&sphereCount, "count", "n", 20000, "number of points to generate")
	sphereCmd.Flags().Float64Var(&sphereRadius, "radius", 1.0, "sphere radius")
	sphereCmd.Flags().StringVarP(&sphereOutput, "output", "o", "", "output file (default: stdout; .xz compresses)")
	sphereCmd.Flags().BoolVar(&spherePretty, "pretty", false, "indent JSON output")
}

// runSphere executes the sphere command.
func runSphere(cmd *cobra.Command, args []string) error {
	if sphereCount < 1 {
		return fmt.Errorf("point count must be at least 1, got %d", sphereCount)
	}

	result := geometry.Sphere(sphereCount, sphereRadius)
	return export.Write(sphereOutput, result, spherePretty)
}
