package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderInline string
	renderFields string
	renderAnswer bool
)

// renderCmd: ankitmpl render
var renderCmd = &cobra.Command{
	Use:   "render [template-file]",
	Short: "Render a template with the given field values",
	Long: `Renders one side of a card. Template problems are rendered as an
explanation, the way a card viewer shows them.
Example) ankitmpl render front.html --fields note.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template, err := readTemplate(renderInline, firstArg(args))
		if err != nil {
			return err
		}
		fields, err := readFields(renderFields)
		if err != nil {
			return err
		}
		return withTimeout(func(context.Context) error {
			out := renderer.Render(template, fields, !renderAnswer, lang)
			logger.Debug("Rendered template", zap.Int("fields", len(fields)), zap.Bool("answer", renderAnswer))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		})
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderInline, "template", "t", "", "Template text, instead of a template file")
	renderCmd.Flags().StringVarP(&renderFields, "fields", "f", "", "YAML or JSON file mapping field names to values")
	renderCmd.Flags().BoolVar(&renderAnswer, "answer", false, "Render as the back of the card")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
