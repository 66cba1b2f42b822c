package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhliemfc/imagekit/internal/codec"
	"github.com/nguyenthanhliemfc/imagekit/internal/hasher"
	"github.com/nguyenthanhliemfc/imagekit/internal/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report.json>",
	Short: "Check that the files a report describes are unchanged on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	r, err := report.Read(args[0])
	if err != nil {
		return err
	}

	errs := verifyFile("input", r.Input)
	errs = append(errs, verifyFile("output", r.Output)...)
	errs = append(errs, verifyFormat(r.Output)...)

	w := cmd.OutOrStdout()
	if len(errs) == 0 {
		fmt.Fprintf(w, "  ✓ %s report is valid\n", r.Operation)
		fmt.Fprintf(w, "  ✓ %s %dx%d, %s\n", r.Output.Path, r.Output.Width, r.Output.Height, formatBytes(r.Output.Size))
		return nil
	}

	fmt.Fprintf(w, "  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("verification failed with %d errors", len(errs))
}

// verifyFile compares one recorded file with what is on disk.
func verifyFile(role string, want report.File) []string {
	if want.Path == "" {
		return []string{fmt.Sprintf("%s: missing path", role)}
	}

	f, err := os.Open(want.Path)
	if err != nil {
		return []string{fmt.Sprintf("%s: file not found: %s", role, want.Path)}
	}
	defer f.Close()

	var buf bytes.Buffer
	hash, err := hasher.ContentHashReader(io.TeeReader(f, &buf), 16)
	if err != nil {
		return []string{fmt.Sprintf("%s: read %s: %v", role, want.Path, err)}
	}

	var errs []string
	if size := int64(buf.Len()); size != want.Size {
		errs = append(errs, fmt.Sprintf("%s: size mismatch: report=%d, disk=%d", role, want.Size, size))
	}
	if hash != want.Hash {
		errs = append(errs, fmt.Sprintf("%s: hash mismatch: report=%s, disk=%s", role, want.Hash, hash))
	}
	width, height, err := app.transformer.Dimensions(buf.Bytes())
	switch {
	case err != nil:
		errs = append(errs, fmt.Sprintf("%s: %v", role, err))
	case width != want.Width || height != want.Height:
		errs = append(errs, fmt.Sprintf("%s: dimensions mismatch: report=%dx%d, disk=%dx%d",
			role, want.Width, want.Height, width, height))
	}
	return errs
}

func verifyFormat(out report.File) []string {
	f, err := codec.ParseFormat(out.Format)
	if err != nil {
		return []string{fmt.Sprintf("output: %v", err)}
	}
	if out.ContentType != "" && out.ContentType != f.ContentType() {
		return []string{fmt.Sprintf("output: content type %q does not match format %s", out.ContentType, f)}
	}
	return nil
}
