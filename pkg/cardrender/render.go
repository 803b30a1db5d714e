package cardrender

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	anki "github.com/AlexanderGrooff/anki-template-go"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// DefaultClozeHelpURL is linked from the warning shown on a cloze card
// without cloze deletions.
const DefaultClozeHelpURL = "https://docs.ankiweb.net/editing.html#cloze-deletion"

// QA is the rendered question and answer of a card.
type QA struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Card is one card generated from a note.
type Card struct {
	Ord  int    `json:"ord" yaml:"ord"`
	Name string `json:"name" yaml:"name"`
	QA   `yaml:",inline"`
}

// Renderer renders the cards of notes with an anki.Renderer.
type Renderer struct {
	templates    *anki.Renderer
	lang         language.Tag
	logger       *zap.Logger
	clozeHelpURL string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLanguage sets the language of messages shown on cards.
func WithLanguage(lang language.Tag) Option {
	return func(r *Renderer) { r.lang = lang }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithClozeHelpURL sets the link of the empty cloze warning.
func WithClozeHelpURL(url string) Option {
	return func(r *Renderer) { r.clozeHelpURL = url }
}

// New creates a card renderer on top of templates.
func New(templates *anki.Renderer, opts ...Option) *Renderer {
	r := &Renderer{
		templates:    templates,
		lang:         language.English,
		logger:       zap.NewNop(),
		clozeHelpURL: DefaultClozeHelpURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fields returns everything the templates of card ord can refer to: the note
// fields plus Tags, Type, Deck, Subdeck, CardFlag, Card and c<ord+1>.
func (r *Renderer) Fields(nt *NoteType, note Note, ord int) (map[string]string, error) {
	tmpl, err := nt.Template(ord)
	if err != nil {
		return nil, err
	}
	fields := nt.noteFields(note)
	fields["Tags"] = strings.TrimSpace(strings.Join(note.Tags, " "))
	fields["Type"] = nt.Name
	fields["Deck"] = note.Deck
	fields["Subdeck"] = subdeck(note.Deck)
	fields["CardFlag"] = flagName(note.CardFlag)
	fields["Card"] = tmpl.Name
	fields["c"+strconv.Itoa(ord+1)] = "1"
	return fields, nil
}

// RenderQA renders the question and answer of card ord. The answer can show
// the question through {{FrontSide}}.
func (r *Renderer) RenderQA(nt *NoteType, note Note, ord int) (QA, error) {
	tmpl, err := nt.Template(ord)
	if err != nil {
		return QA{}, err
	}
	fields, err := r.Fields(nt, note, ord)
	if err != nil {
		return QA{}, err
	}

	var qa QA
	fields["FrontSide"] = ""
	qa.Question = r.templates.Render(RewriteCloze(tmpl.QFmt, ord, true), fields, true, r.lang)
	fields["FrontSide"] = qa.Question
	qa.Answer = r.templates.Render(RewriteCloze(tmpl.AFmt, ord, false), fields, false, r.lang)

	if nt.IsCloze() && len(clozeOrds(nt, fields)) == 0 {
		r.logger.Debug("Cloze note has no cloze deletions", zap.String("note_type", nt.Name))
		qa.Question = r.emptyClozeWarning()
	}
	return qa, nil
}

func (r *Renderer) emptyClozeWarning() string {
	link := fmt.Sprintf(`<a href="%s">help</a>`, html.EscapeString(r.clozeHelpURL))
	return r.templates.Localizer().Text(r.lang, anki.MsgEmptyCloze, link)
}

// AvailableOrds returns the ordinals of the cards a note generates. A
// standard note gets the cards whose question parses and is not empty. A
// cloze note gets one card per cloze number, or card 0 when it has none.
func (r *Renderer) AvailableOrds(nt *NoteType, note Note) []int {
	fields := nt.noteFields(note)
	if nt.IsCloze() {
		ords := clozeOrds(nt, fields)
		if len(ords) == 0 {
			return []int{0}
		}
		return ords
	}

	nonEmpty := anki.NonEmptyFields(fields)
	var ords []int
	for ord, tmpl := range nt.Templates {
		node, err := r.templates.Parse(tmpl.QFmt)
		if err != nil {
			r.logger.Warn("Skipping card with a broken question template",
				zap.String("note_type", nt.Name),
				zap.String("template", tmpl.Name),
				zap.Error(err),
			)
			continue
		}
		if !node.TemplateIsEmpty(nonEmpty) {
			ords = append(ords, ord)
		}
	}
	return ords
}

// Cards renders every card the note generates.
func (r *Renderer) Cards(nt *NoteType, note Note) ([]Card, error) {
	ords := r.AvailableOrds(nt, note)
	cards := make([]Card, 0, len(ords))
	for _, ord := range ords {
		qa, err := r.RenderQA(nt, note, ord)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", ord+1, err)
		}
		name := nt.Templates[0].Name
		if nt.IsCloze() {
			name = fmt.Sprintf("%s %d", name, ord+1)
		} else if ord < len(nt.Templates) {
			name = nt.Templates[ord].Name
		}
		cards = append(cards, Card{Ord: ord, Name: name, QA: qa})
	}
	r.logger.Debug("Generated cards", zap.String("note_type", nt.Name), zap.Int("count", len(cards)))
	return cards, nil
}

// subdeck returns the last component of a "Parent::Child" deck name.
func subdeck(deck string) string {
	parts := strings.Split(deck, "::")
	return parts[len(parts)-1]
}

func flagName(flag int) string {
	if flag&0b111 == 0 {
		return ""
	}
	return "flag" + strconv.Itoa(flag&0b111)
}
