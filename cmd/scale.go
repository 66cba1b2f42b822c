package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var (
	scalePercent float64
	scaleFormat  string
)

var scaleCmd = &cobra.Command{
	Use:   "scale <input>",
	Short: "Resize an image to a percentage of its dimensions",
	Long: `Scales both dimensions by --percent (100 keeps the size). Results are
rounded half to even; sizes beyond 32767 pixels are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runScale,
}

func init() {
	scaleCmd.Flags().Float64VarP(&scalePercent, "percent", "p", 0, "percentage of the original size")
	scaleCmd.Flags().StringVarP(&scaleFormat, "format", "f", "", "output format: jpg or png (default: preset format)")
	_ = scaleCmd.MarkFlagRequired("percent")
	addOutputFlag(scaleCmd)
	rootCmd.AddCommand(scaleCmd)
}

func runScale(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(scaleFormat)
	if err != nil {
		return err
	}
	percent := scalePercent

	return runJob(cmd, job{
		op:     "scale",
		input:  args[0],
		format: format,
		params: map[string]string{
			"percent": strconv.FormatFloat(percent, 'f', -1, 64),
			"format":  format.String(),
		},
		run: func(src []byte) ([]byte, error) {
			return app.transformer.ScaleImage(src, percent, format)
		},
	})
}
