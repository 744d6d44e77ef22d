package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stipple/internal/colour"
	"github.com/jmylchreest/stipple/internal/pipeline"
	"github.com/jmylchreest/stipple/internal/segment"
)

var (
	// Inspect command flags
	inspectCache       bool
	inspectTop         int
	inspectOuterRadius float64
	inspectBgRatio     float64
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Show background segmentation diagnostics for an image",
	Long: `Classify an image's colour classes and show how the background
segmentation decided: per-class sample totals, the share of samples in
the outer zone, and the resulting background verdicts.

Use this to recalibrate the --bg-outer-radius and --bg-ratio thresholds
when the defaults misclassify an image.

Examples:
  # The 20 most-sampled colour classes
  stipple inspect wallpaper.jpg

  # Tighter outer zone, every class
  stipple inspect --bg-outer-radius 0.5 --top 0 wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectCache, "cache", false, "cache remote images locally")
	inspectCmd.Flags().IntVar(&inspectTop, "top", 20, "number of classes to show, most sampled first (0 = all)")
	inspectCmd.Flags().Float64Var(&inspectOuterRadius, "bg-outer-radius", segment.DefaultConfig().OuterRadiusSq, "squared normalised radius of the outer zone")
	inspectCmd.Flags().Float64Var(&inspectBgRatio, "bg-ratio", segment.DefaultConfig().BackgroundRatio, "outer-sample ratio above which a colour class is background")
}

// runInspect executes the inspect command.
func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger(cmd)

	src, err := resolveSource(ctx, args[0], inspectCache)
	if err != nil {
		return err
	}

	segCfg := segment.DefaultConfig()
	segCfg.OuterRadiusSq = inspectOuterRadius
	segCfg.BackgroundRatio = inspectBgRatio
	if err := segCfg.Validate(); err != nil {
		return fmt.Errorf("invalid background thresholds: %w", err)
	}

	p := pipeline.New(pipeline.Options{
		Logger:  logger,
		Segment: segCfg,
	})

	cls, bounds, err := p.Inspect(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to inspect image: %w", err)
	}

	keys := cls.Keys()
	sort.Slice(keys, func(i, j int) bool {
		si, _ := cls.Stats(keys[i])
		sj, _ := cls.Stats(keys[j])
		if si.Total != sj.Total {
			return si.Total > sj.Total
		}
		return keys[i] < keys[j]
	})
	if inspectTop > 0 && len(keys) > inspectTop {
		keys = keys[:inspectTop]
	}

	// ANSI escapes would break the column alignment, so swatches stay as
	// plain hex here; the palette command renders coloured previews.
	table := NewTable([]string{"CLASS", "SWATCH", "SAMPLES", "OUTER", "BACKGROUND"})
	for _, key := range keys {
		st, _ := cls.Stats(key)
		rep := colour.RGB{R: st.R, G: st.G, B: st.B}
		swatch := rep.Hex()

		verdict := ""
		if cls.IsBackgroundKey(key) {
			verdict = "yes"
		}

		table.AddRow([]string{
			fmt.Sprintf("%03x", uint16(key)),
			swatch,
			fmt.Sprintf("%d", st.Total),
			fmt.Sprintf("%.0f%%", st.OuterRatio()*100),
			verdict,
		})
	}

	fmt.Printf("%s: %dx%d working buffer, %d samples, %d classes (%d background)\n\n",
		src, bounds.Dx(), bounds.Dy(), cls.SampleCount(), cls.ClassCount(), cls.BackgroundCount())
	fmt.Print(table.Render())

	return nil
}
