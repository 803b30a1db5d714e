package main

import (
	"context"
	"fmt"

	anki "github.com/AlexanderGrooff/anki-template-go"
	"github.com/spf13/cobra"
)

var (
	emptyInline string
	emptyFields string
)

// emptyCmd: ankitmpl empty
var emptyCmd = &cobra.Command{
	Use:   "empty [template-file]",
	Short: "Tell whether a template renders no field content",
	Long: `Prints "true" when the template shows none of the non-empty fields,
in which case no card would be generated from it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template, err := readTemplate(emptyInline, firstArg(args))
		if err != nil {
			return err
		}
		fields, err := readFields(emptyFields)
		if err != nil {
			return err
		}
		return withTimeout(func(context.Context) error {
			nonEmpty := anki.NonEmptyFields(fields)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderer.TemplateIsEmpty(template, nonEmpty))
			return err
		})
	},
}

func init() {
	emptyCmd.Flags().StringVarP(&emptyInline, "template", "t", "", "Template text, instead of a template file")
	emptyCmd.Flags().StringVarP(&emptyFields, "fields", "f", "", "YAML or JSON file mapping field names to values")
}
