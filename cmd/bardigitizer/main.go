package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go-bar-digitizer/internal/config"
	"go-bar-digitizer/internal/container"
	apperrors "go-bar-digitizer/internal/errors"
	"go-bar-digitizer/internal/logger"
	"go-bar-digitizer/internal/report"
)

func main() {
	os.Exit(exitCode(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitCode runs the tool for args and returns the process exit status
func exitCode(args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) != 1 {
		usage(errOut)
		return apperrors.ExitCodeFailure
	}

	if err := run(args[0], in, out); err != nil {
		logger.WithError(err).Error("Digitizing failed")
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return apperrors.GetExitCode(err)
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bardigitizer <image_path>")
	fmt.Fprintln(w, "\nExample:")
	fmt.Fprintln(w, "  bardigitizer elution_chart.png")
}

func run(source string, in io.Reader, out io.Writer) error {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return apperrors.NewConfigError("invalid configuration", err)
	}

	// Initialize dependency injection container
	c, err := container.NewContainer(cfg, in, out)
	if err != nil {
		return err
	}

	// Interrupts cancel the open phase or prompt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Processing: %s\n", source)

	chart, err := c.LoadChart(ctx, source)
	if err != nil {
		return err
	}

	surf, err := c.NewSurface(chart)
	if err != nil {
		return err
	}

	result, err := c.Digitize(ctx, surf, chart)
	if err != nil {
		return err
	}

	report.WriteResults(out, result.ReportBars())
	report.WriteCopyBlock(out, result.Values(), c.Config().GroupSize)
	return nil
}
