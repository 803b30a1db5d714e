package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlexanderGrooff/anki-template-go/pkg/cardrender"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cardsNote string
	cardsJSON bool
)

// cardsCmd: ankitmpl cards
var cardsCmd = &cobra.Command{
	Use:   "cards [note-type-file]",
	Short: "Render every card a note generates",
	Long: `Reads a YAML note type and a YAML or JSON note, then prints the question
and answer of each card the note generates.
Example) ankitmpl cards cloze.yaml --note note.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nt, err := cardrender.LoadNoteType(args[0])
		if err != nil {
			return err
		}
		note, err := readNote(cardsNote)
		if err != nil {
			return err
		}
		return withTimeout(func(context.Context) error {
			cards, err := newCardRenderer().Cards(nt, note)
			if err != nil {
				return err
			}
			return printCards(cmd, cards)
		})
	},
}

func init() {
	cardsCmd.Flags().StringVarP(&cardsNote, "note", "n", "", "YAML or JSON file holding the note")
	cardsCmd.Flags().BoolVar(&cardsJSON, "json", false, "Output cards in JSON format")
}

func readNote(path string) (cardrender.Note, error) {
	var note cardrender.Note
	if path == "" {
		return note, fmt.Errorf("no note given, use --note")
	}
	f, err := os.Open(path)
	if err != nil {
		return note, fmt.Errorf("failed to open note: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&note); err != nil {
		return note, fmt.Errorf("failed to decode note: %w", err)
	}
	return note, nil
}

func printCards(cmd *cobra.Command, cards []cardrender.Card) error {
	out := cmd.OutOrStdout()
	if cardsJSON {
		d, err := json.Marshal(cards)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(d))
		return err
	}
	for _, card := range cards {
		fmt.Fprintln(out, fileStyle.Sprintf("%s (ord %d)", card.Name, card.Ord))
		fmt.Fprintln(out, "Q: "+card.Question)
		fmt.Fprintln(out, "A: "+card.Answer)
	}
	return nil
}
