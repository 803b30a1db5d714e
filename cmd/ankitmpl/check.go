package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	anki "github.com/AlexanderGrooff/anki-template-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	fileStyle  = color.New(color.FgCyan, color.Bold)
	okStyle    = color.New(color.FgGreen, color.Bold)
)

var errInvalidTemplates = errors.New("some templates have problems")

// checkCmd: ankitmpl check
var checkCmd = &cobra.Command{
	Use:   "check [template-files...]",
	Short: "Report the syntax problems of templates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTimeout(func(ctx context.Context) error {
			return checkTemplates(ctx, cmd, args)
		})
	},
}

func checkTemplates(ctx context.Context, cmd *cobra.Command, paths []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Error reading template", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}
		if _, err := renderer.Parse(string(b)); err != nil {
			failed++
			fmt.Fprintln(out, errorStyle.Sprint("error: ")+fileStyle.Sprint(path))
			fmt.Fprintln(out, "  "+templateMessage(err))
			continue
		}
		fmt.Fprintln(out, okStyle.Sprint("ok: ")+fileStyle.Sprint(path))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidTemplates, failed, len(paths))
	}
	return nil
}

func templateMessage(err error) string {
	var te anki.TemplateError
	if errors.As(err, &te) {
		return te.Message(renderer.Localizer(), lang)
	}
	return err.Error()
}
