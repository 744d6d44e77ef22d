package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/stipple/internal/colour"
	"github.com/jmylchreest/stipple/internal/export"
	"github.com/jmylchreest/stipple/internal/pipeline"
	"github.com/jmylchreest/stipple/internal/segment"
)

var (
	// Palette command flags
	paletteAlgorithm   string
	paletteFormat      string
	paletteOutput      string
	paletteShowPreview bool
	paletteSeedMode    string
	paletteCache       bool
	paletteOuterRadius float64
	paletteBgRatio     float64
)

// paletteCmd represents the palette command
var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Extract a six-role colour palette from an image",
	Long: `Extract the six-role colour palette (shadow, midtone, highlight,
features, details, background) from an image.

The default stochastic algorithm splits the image into background and
foreground colour pools, then runs a randomised selection pipeline, so
two runs on the same image give different palettes unless a deterministic
seed mode is chosen. The kmeans and dominant algorithms are deterministic
alternatives.

Examples:
  # Six hex colours in role order
  stipple palette wallpaper.jpg

  # JSON with role names, pretty-printed to a file
  stipple palette -f json -o palette.json wallpaper.png

  # Terminal swatches per role
  stipple palette --preview wallpaper.jpg

  # Reproducible extraction with a manual seed
  stipple palette --seed-mode manual --seed 42 wallpaper.jpg

  # Deterministic clustering instead of the stochastic pipeline
  stipple palette -a kmeans wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().StringVarP(&paletteAlgorithm, "algorithm", "a", "stochastic", "extraction algorithm (stochastic, kmeans, dominant)")
	paletteCmd.Flags().StringVarP(&paletteFormat, "format", "f", "hex", "output format (hex, json)")
	paletteCmd.Flags().StringVarP(&paletteOutput, "output", "o", "", "output file (default: stdout; .xz compresses)")
	paletteCmd.Flags().BoolVar(&paletteShowPreview, "preview", false, "show colour swatches in the terminal")
	paletteCmd.Flags().StringVar(&paletteSeedMode, "seed-mode", "random", "seed mode (content, filepath, manual, random)")
	paletteCmd.Flags().Int64("seed", 0, "seed value (requires --seed-mode manual)")
	paletteCmd.Flags().BoolVar(&paletteCache, "cache", false, "cache remote images locally")
	paletteCmd.Flags().Float64Var(&paletteOuterRadius, "bg-outer-radius", segment.DefaultConfig().OuterRadiusSq, "squared normalised radius of the outer zone")
	paletteCmd.Flags().Float64Var(&paletteBgRatio, "bg-ratio", segment.DefaultConfig().BackgroundRatio, "outer-sample ratio above which a colour class is background")
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger(cmd)

	alg := colour.Algorithm(paletteAlgorithm)
	if !colour.IsValidAlgorithm(alg) {
		return fmt.Errorf("invalid algorithm: %s (valid: %v)", paletteAlgorithm, colour.ValidAlgorithms())
	}

	src, err := resolveSource(ctx, args[0], paletteCache)
	if err != nil {
		return err
	}

	rng, seedValue, err := newSeededRand(ctx, src, paletteSeedMode, cmd.Flags())
	if err != nil {
		return err
	}
	logger.Debug("extracting palette", "source", src, "algorithm", alg, "seed", seedValue)

	segCfg := segment.DefaultConfig()
	segCfg.OuterRadiusSq = paletteOuterRadius
	segCfg.BackgroundRatio = paletteBgRatio
	if err := segCfg.Validate(); err != nil {
		return fmt.Errorf("invalid background thresholds: %w", err)
	}

	p := pipeline.New(pipeline.Options{
		Logger:  logger,
		Rand:    rng,
		Segment: segCfg,
	})

	palette, err := p.ExtractPalette(ctx, src, alg)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}

	switch paletteFormat {
	case "json":
		return export.Write(paletteOutput, palette.JSONValue(), true)
	case "hex":
		output := formatPaletteHex(palette, paletteShowPreview)
		if paletteOutput != "" {
			if err := os.WriteFile(paletteOutput, []byte(output), 0o644); err != nil { // #nosec G306 - Palette files need standard read permissions
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Print(output)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: hex, json)", paletteFormat)
	}
}

// formatPaletteHex renders the palette as hex lines in role order, with
// ANSI swatches and role labels when previews are requested and stdout is
// a terminal.
func formatPaletteHex(palette *colour.Palette, showPreview bool) string {
	preview := showPreview && term.IsTerminal(int(os.Stdout.Fd()))

	var sb strings.Builder
	for _, role := range colour.Roles() {
		c := palette.Get(role)
		if preview {
			sb.WriteString(colour.FormatColourWithLabel(c, role.String(), 8))
		} else {
			sb.WriteString(c.Hex())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
