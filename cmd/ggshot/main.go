// Command ggshot renders frames and captures one of them into an image file.
//
// Usage:
//
//	ggshot shoot -o frame.png
//	ggshot shoot --source desktop --frames-before 0 -o desktop.tiff
//	ggshot version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/ggshot/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ggshot:", err)
		os.Exit(1)
	}
}
