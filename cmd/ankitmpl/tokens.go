package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	anki "github.com/AlexanderGrooff/anki-template-go"
	"github.com/spf13/cobra"
)

var tokensInline string

// tokensCmd: ankitmpl tokens
var tokensCmd = &cobra.Command{
	Use:   "tokens [template-file]",
	Short: "Print the tokens of a template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template, err := readTemplate(tokensInline, firstArg(args))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		tz := anki.NewTokenizer(template)
		for tz.HasNext() {
			tok, err := tz.Next()
			if err != nil {
				_ = w.Flush()
				return errors.New(templateMessage(err))
			}
			fmt.Fprintf(w, "%s\t%q\t%q\n", tok.Kind, tok.Text, tok.Raw)
		}
		return w.Flush()
	},
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensInline, "template", "t", "", "Template text, instead of a template file")
}
