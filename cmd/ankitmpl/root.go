package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	anki "github.com/AlexanderGrooff/anki-template-go"
	"github.com/AlexanderGrooff/anki-template-go/internal/config"
	"github.com/AlexanderGrooff/anki-template-go/pkg/cardrender"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	timeout time.Duration
	locale  string
	verbose bool

	logger   *zap.Logger
	conf     config.Config
	lang     language.Tag
	renderer *anki.Renderer
)

var rootCmd = &cobra.Command{
	Use:           "ankitmpl",
	Short:         "ankitmpl - render and check flashcard templates",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the command line and logs the error that ended it.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = zap.NewNop()
		}
		logger.Error("Command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the configuration file (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Abort the command after this long (default from config)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Language of error messages, e.g. en or fr (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(emptyCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(cardsCmd)
}

// setup builds the logger, the configuration and the renderer shared by all
// subcommands. Flags take precedence over the configuration file.
func setup(cmd *cobra.Command) error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	conf, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		conf.Timeout = timeout
	}
	if locale != "" {
		conf.Locale = locale
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	lang, _ = conf.Language()

	renderer = anki.NewRenderer(
		anki.WithCache(anki.NewTemplateCache(conf.CacheCapacity)),
		anki.WithLogger(logger),
		anki.WithHelpURL(conf.HelpURL),
	)
	logger.Debug("Renderer ready",
		zap.Int("cache_capacity", conf.CacheCapacity),
		zap.Stringer("lang", lang),
		zap.Duration("timeout", conf.Timeout),
	)
	return nil
}

func newCardRenderer() *cardrender.Renderer {
	return cardrender.New(renderer,
		cardrender.WithLanguage(lang),
		cardrender.WithLogger(logger),
		cardrender.WithClozeHelpURL(conf.ClozeHelpURL),
	)
}

// withTimeout runs f under the configured timeout. f keeps running in the
// background when the timeout fires, the command just stops waiting for it.
func withTimeout(f func(ctx context.Context) error) error {
	ctx := context.Background()
	if conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.Timeout)
		defer cancel()
	}
	return runWithTimeout(ctx, func() error { return f(ctx) })
}

func runWithTimeout(ctx context.Context, f func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- f()
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("timed out: %w", ctx.Err())
	case err := <-done:
		return err
	}
}

// readTemplate returns the template given inline, or the content of path.
func readTemplate(inline, path string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if path == "" {
		return "", fmt.Errorf("no template given")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(b), nil
}

// readFields loads field values from a YAML or JSON mapping of name to value.
func readFields(path string) (map[string]string, error) {
	fields := map[string]string{}
	if path == "" {
		return fields, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fields: %w", err)
	}
	defer f.Close()

	// JSON documents are valid YAML, so one decoder serves both.
	if err := yaml.NewDecoder(f).Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode fields in %s: %w", filepath.Base(path), err)
	}
	return fields, nil
}
