package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tunesets/internal/render"
	"tunesets/internal/services"
	"tunesets/internal/setbuild"
)

type summaryMode string

const (
	summaryAuto   summaryMode = "auto"
	summaryAlways summaryMode = "always"
	summaryNever  summaryMode = "never"
)

func runBuild(cmd *cobra.Command, ctx *commandContext, mode summaryMode) error {
	switch mode {
	case summaryAuto, summaryAlways, summaryNever:
	default:
		return services.Wrap(services.ErrValidation, "cli", "--summary", fmt.Sprintf("unknown mode %q", mode), nil)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	builder := setbuild.New(cfg, logger, setbuild.WithStdout(cmd.OutOrStdout()))
	report, err := builder.Run(cmd.Context())
	if err != nil {
		return err
	}

	if mode == summaryAlways || (mode == summaryAuto && isTerminal(cmd.OutOrStdout())) {
		fmt.Fprintln(cmd.ErrOrStderr(), render.Summary(report.Result.Chains, report.Stats()))
	}
	return nil
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
