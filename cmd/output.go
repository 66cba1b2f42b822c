package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhliemfc/imagekit/internal/codec"
	"github.com/nguyenthanhliemfc/imagekit/internal/hasher"
	"github.com/nguyenthanhliemfc/imagekit/internal/report"
)

// outputPath is shared by reduce, resize and scale.
var outputPath string

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"output file, or directory for a content-addressed name (default: --out-dir)")
}

// resolveFormat returns the flag's format, or the preset's when unset.
func resolveFormat(flag string) (codec.Format, error) {
	if strings.TrimSpace(flag) == "" {
		return app.preset.Format, nil
	}
	return codec.ParseFormat(flag)
}

// job is one transform run from input file to output file.
type job struct {
	op     string
	input  string
	format codec.Format
	params map[string]string
	run    func(src []byte) ([]byte, error)
}

func runJob(cmd *cobra.Command, j job) error {
	start := time.Now()
	l := logger.With().Str("op", j.op).Str("input", j.input).Logger()

	src, err := os.ReadFile(j.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	l.Debug().Int("bytes", len(src)).Msg("input loaded")

	out, err := j.run(src)
	if err != nil {
		return fmt.Errorf("%s %s: %w", j.op, j.input, err)
	}

	inW, inH, err := app.transformer.Dimensions(src)
	if err != nil {
		return fmt.Errorf("read input header: %w", err)
	}
	outW, outH, err := app.transformer.Dimensions(out)
	if err != nil {
		return fmt.Errorf("verify output: %w", err)
	}

	contentHash := hasher.ContentHash(out, 16)
	dst, err := resolveOutputPath(j.input, outputPath, app.cfg.OutDir, outW, outH, contentHash[:8], j.format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	elapsed := time.Since(start)

	r := report.New(j.op)
	for k, v := range j.params {
		r.Params[k] = v
	}
	r.Input = report.File{
		Path:   j.input,
		Width:  inW,
		Height: inH,
		Size:   int64(len(src)),
		Hash:   hasher.ContentHash(src, 16),
	}
	r.Output = report.File{
		Path:        dst,
		Format:      j.format.String(),
		ContentType: j.format.ContentType(),
		Width:       outW,
		Height:      outH,
		Size:        int64(len(out)),
		Hash:        contentHash,
	}
	r.ElapsedMS = elapsed.Milliseconds()

	// A run either leaves both files or neither.
	if reportPath != "" {
		if err := report.WriteJSON(r, reportPath); err != nil {
			if rmErr := os.Remove(dst); rmErr != nil {
				l.Warn().Err(rmErr).Str("output", dst).Msg("remove output")
			}
			return fmt.Errorf("write report: %w", err)
		}
		l.Debug().Str("report", reportPath).Msg("report written")
	}

	l.Info().
		Str("output", dst).
		Str("format", j.format.String()).
		Int("width", outW).
		Int("height", outH).
		Int("bytes", len(out)).
		Dur("elapsed", elapsed).
		Msg("done")

	printResult(cmd.OutOrStdout(), r, elapsed)
	return nil
}

// resolveOutputPath picks the destination file. An empty output, an
// existing directory or a path ending in a separator get a content-addressed
// name: <input name>.<w>.<h>.<hash>.<ext>.
func resolveOutputPath(input, output, outDir string, w, h int, hash string, format codec.Format) (string, error) {
	dir := ""
	switch {
	case output == "":
		dir = outDir
	case strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)):
		dir = output
	default:
		info, err := os.Stat(output)
		switch {
		case err == nil && info.IsDir():
			dir = output
		case err == nil || os.IsNotExist(err):
			return output, nil
		default:
			return "", fmt.Errorf("stat output: %w", err)
		}
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name := fmt.Sprintf("%s.%d.%d.%s.%s", base, w, h, hash, format.Extension())
	return filepath.Join(dir, name), nil
}

func printResult(w io.Writer, r *report.Report, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Output:  %s\n", r.Output.Path)
	fmt.Fprintf(w, "  Format:  %s\n", r.Output.Format)
	fmt.Fprintf(w, "  Size:    %dx%d → %dx%d\n", r.Input.Width, r.Input.Height, r.Output.Width, r.Output.Height)
	fmt.Fprintf(w, "  Bytes:   %s → %s (%.1f%% of original)\n",
		formatBytes(r.Input.Size), formatBytes(r.Output.Size), r.Ratio()*100)
	fmt.Fprintf(w, "  Time:    %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
