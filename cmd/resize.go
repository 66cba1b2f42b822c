package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var (
	resizeWidth  int
	resizeHeight int
	resizeFormat string
)

var resizeCmd = &cobra.Command{
	Use:   "resize <input>",
	Short: "Resample an image to an exact width and height",
	Long: `Resamples the input to exactly --width x --height pixels with a
nearest-neighbour filter. The aspect ratio is not preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: runResize,
}

func init() {
	resizeCmd.Flags().IntVar(&resizeWidth, "width", 0, "target width in pixels")
	resizeCmd.Flags().IntVar(&resizeHeight, "height", 0, "target height in pixels")
	resizeCmd.Flags().StringVarP(&resizeFormat, "format", "f", "", "output format: jpg or png (default: preset format)")
	_ = resizeCmd.MarkFlagRequired("width")
	_ = resizeCmd.MarkFlagRequired("height")
	addOutputFlag(resizeCmd)
	rootCmd.AddCommand(resizeCmd)
}

func runResize(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(resizeFormat)
	if err != nil {
		return err
	}
	width, height := resizeWidth, resizeHeight

	return runJob(cmd, job{
		op:     "resize",
		input:  args[0],
		format: format,
		params: map[string]string{
			"width":  strconv.Itoa(width),
			"height": strconv.Itoa(height),
			"format": format.String(),
		},
		run: func(src []byte) ([]byte, error) {
			return app.transformer.ResizeImage(src, height, width, format)
		},
	})
}
