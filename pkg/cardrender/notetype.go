// Package cardrender turns notes into rendered cards: it fills in the
// special fields a card template can use, rewrites cloze handles for the
// card being shown and decides which cards a note generates.
package cardrender

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind tells how the cards of a note type are generated.
type Kind int

const (
	// KindStandard generates one card per template.
	KindStandard Kind = iota
	// KindCloze generates one card per cloze number, all from the first template.
	KindCloze
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindCloze:
		return "cloze"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// UnmarshalYAML accepts "standard" or "cloze".
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		*k = KindStandard
	case "cloze":
		*k = KindCloze
	default:
		return fmt.Errorf("line %d: unknown note type kind %q", value.Line, s)
	}
	return nil
}

// MarshalYAML writes the kind by name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// CardTemplate is the front (question) and back (answer) format of a card.
type CardTemplate struct {
	Name string `yaml:"name"`
	QFmt string `yaml:"qfmt"`
	AFmt string `yaml:"afmt"`
}

// NoteType describes the fields of a note and the templates of its cards.
type NoteType struct {
	Name      string         `yaml:"name"`
	Kind      Kind           `yaml:"kind"`
	Fields    []string       `yaml:"fields"`
	Templates []CardTemplate `yaml:"templates"`
}

// Note is the data rendered into cards.
type Note struct {
	Fields map[string]string `yaml:"fields" json:"fields"`
	Tags   []string          `yaml:"tags" json:"tags"`
	Deck   string            `yaml:"deck" json:"deck"`
	// CardFlag is the flag colour (1-7) of the card being rendered, 0 for none.
	CardFlag int `yaml:"flag" json:"flag"`
}

// LoadNoteType reads a YAML note type from path.
func LoadNoteType(path string) (*NoteType, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open note type: %w", err)
	}
	defer f.Close()

	nt, err := ParseNoteType(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nt, nil
}

// ParseNoteType decodes and validates a YAML note type.
func ParseNoteType(r io.Reader) (*NoteType, error) {
	var nt NoteType
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&nt); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("note type is empty")
		}
		return nil, fmt.Errorf("failed to decode note type: %w", err)
	}
	if err := nt.Validate(); err != nil {
		return nil, err
	}
	return &nt, nil
}

// Validate checks that the note type can render cards.
func (nt *NoteType) Validate() error {
	if len(nt.Templates) == 0 {
		return fmt.Errorf("note type %q has no templates", nt.Name)
	}
	seen := make(map[string]bool, len(nt.Fields))
	for _, name := range nt.Fields {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("note type %q has a field without a name", nt.Name)
		}
		if seen[name] {
			return fmt.Errorf("note type %q has duplicate field %q", nt.Name, name)
		}
		seen[name] = true
	}
	return nil
}

// IsCloze reports whether the note type generates cloze cards.
func (nt *NoteType) IsCloze() bool {
	return nt.Kind == KindCloze
}

// Template returns the template used by the card of ordinal ord.
func (nt *NoteType) Template(ord int) (CardTemplate, error) {
	if ord < 0 {
		return CardTemplate{}, fmt.Errorf("invalid card ordinal %d", ord)
	}
	if nt.IsCloze() {
		return nt.Templates[0], nil
	}
	if ord >= len(nt.Templates) {
		return CardTemplate{}, fmt.Errorf("note type %q has no template %d", nt.Name, ord)
	}
	return nt.Templates[ord], nil
}

// noteFields returns the note's values for the fields of the note type. Fields
// the note does not set are empty; when the note type lists no fields, the
// note's own fields are used.
func (nt *NoteType) noteFields(note Note) map[string]string {
	if len(nt.Fields) == 0 {
		fields := make(map[string]string, len(note.Fields))
		for name, value := range note.Fields {
			fields[name] = value
		}
		return fields
	}
	fields := make(map[string]string, len(nt.Fields))
	for _, name := range nt.Fields {
		fields[name] = note.Fields[name]
	}
	return fields
}
