package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	runner := NewRunner(RunnerOpts{Output: stdout, ErrOutput: stderr})
	if err := runner.command().Run(ctx, args); err != nil {
		fmt.Fprintf(stderr, "speakerctl: %v\n", err)
		return 1
	}
	return 0
}
