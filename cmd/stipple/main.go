// Stipple - point clouds and palettes from images
//
// Stipple samples raster images into sparse 3-D point clouds that trace
// their edge and foreground structure, and extracts six-role colour
// palettes summarising their tonal character.
package main

import (
	"os"

	"github.com/jmylchreest/stipple/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
