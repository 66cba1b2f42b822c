package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyenthanhliemfc/imagekit/internal/hasher"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Decode an image and print its dimensions, size and content hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// Hash while reading so the file is only read once.
	var buf bytes.Buffer
	hash, err := hasher.ContentHashReader(io.TeeReader(f, &buf), 16)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	data := buf.Bytes()

	// Full decode, not just the header, so truncated files are caught.
	img, err := app.codec.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  File:    %s\n", path)
	fmt.Fprintf(w, "  Size:    %dx%d\n", b.Dx(), b.Dy())
	fmt.Fprintf(w, "  Bytes:   %s\n", formatBytes(int64(len(data))))
	fmt.Fprintf(w, "  Hash:    %s\n", hash)
	fmt.Fprintln(w)
	return nil
}
