package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhliemfc/imagekit/internal/codec"
)

var reduceQuality int

var reduceCmd = &cobra.Command{
	Use:   "reduce <input>",
	Short: "Re-encode an image as JPEG at the given quality",
	Long: `Decodes the input (any supported format) and writes it back as JPEG at
--quality. Dimensions are unchanged. Without --quality the preset's
quality is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runReduce,
}

func init() {
	reduceCmd.Flags().IntVarP(&reduceQuality, "quality", "q", 0, "JPEG quality 1-100 (default: preset quality)")
	addOutputFlag(reduceCmd)
	rootCmd.AddCommand(reduceCmd)
}

func runReduce(cmd *cobra.Command, args []string) error {
	quality := reduceQuality
	if !cmd.Flags().Changed("quality") {
		quality = app.preset.Quality
	}

	return runJob(cmd, job{
		op:     "reduce",
		input:  args[0],
		format: codec.JPEG,
		params: map[string]string{"quality": strconv.Itoa(quality)},
		run: func(src []byte) ([]byte, error) {
			return app.transformer.ReduceJPGQuality(src, quality)
		},
	})
}
