package main

import (
	"os"

	"github.com/nguyenthanhliemfc/imagekit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
