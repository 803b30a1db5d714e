package anki

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Localizer looks up a user-facing message by symbolic key and formats it
// with positional arguments.
type Localizer interface {
	Text(lang language.Tag, key string, args ...interface{}) string
}

// Message keys understood by the default catalog.
const (
	MsgNoClosingBrackets      = "template.no_closing_brackets"
	MsgConditionalNotClosed   = "template.conditional_not_closed"
	MsgWrongConditionalClosed = "template.wrong_conditional_closed"
	MsgConditionalNotOpen     = "template.conditional_not_open"
	MsgFieldNotFound          = "template.field_not_found"
	MsgTemplateProblem        = "template.has_a_problem"
	MsgFront                  = "template.side_front"
	MsgBack                   = "template.side_back"
	MsgMoreInformation        = "template.more_information"
	MsgFilterError            = "filter.error"
	MsgShowHint               = "filter.show_hint"
	MsgEmptyCloze             = "card.empty_cloze"
)

var defaultMessages = map[language.Tag]map[string]string{
	language.English: {
		MsgNoClosingBrackets:      "Missing '}}' in '%s'.",
		MsgConditionalNotClosed:   "Found '{{#%[1]s}}' or '{{^%[1]s}}', but missing '{{/%[1]s}}'.",
		MsgWrongConditionalClosed: "Found '{{/%[1]s}}', but expected '{{/%[2]s}}'.",
		MsgConditionalNotOpen:     "Found '{{/%[1]s}}', but missing '{{#%[1]s}}' or '{{^%[1]s}}'.",
		MsgFieldNotFound:          "Found '{{%[1]s}}', but there is no field called '%[2]s'.",
		MsgTemplateProblem:        "The %[1]s of this card template has a problem: %[2]s",
		MsgFront:                  "front",
		MsgBack:                   "back",
		MsgMoreInformation:        "More information",
		MsgFilterError:            "Error in filter %s",
		MsgShowHint:               "Show %s",
		MsgEmptyCloze:             "No cloze deletion found on this card. Add at least one cloze deletion, or change the note type to Basic. %s",
	},
	language.French: {
		MsgNoClosingBrackets:      "'}}' manquant dans '%s'.",
		MsgConditionalNotClosed:   "'{{#%[1]s}}' ou '{{^%[1]s}}' trouvé, mais '{{/%[1]s}}' manquant.",
		MsgWrongConditionalClosed: "'{{/%[1]s}}' trouvé, mais '{{/%[2]s}}' attendu.",
		MsgConditionalNotOpen:     "'{{/%[1]s}}' trouvé, mais '{{#%[1]s}}' ou '{{^%[1]s}}' manquant.",
		MsgFieldNotFound:          "'{{%[1]s}}' trouvé, mais aucun champ ne s'appelle '%[2]s'.",
		MsgTemplateProblem:        "Le %[1]s de ce modèle de carte a un problème : %[2]s",
		MsgFront:                  "recto",
		MsgBack:                   "verso",
		MsgMoreInformation:        "Plus d'informations",
		MsgFilterError:            "Erreur dans le filtre %s",
		MsgShowHint:               "Afficher %s",
		MsgEmptyCloze:             "Aucun texte à trous sur cette carte. Ajoutez au moins un trou, ou changez le type de note en Basique. %s",
	},
}

// CatalogLocalizer is a Localizer backed by an x/text message catalog.
// Unsupported languages fall back to the closest supported one.
type CatalogLocalizer struct {
	catalog   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// NewCatalogLocalizer builds a localizer holding the built-in English and
// French messages.
func NewCatalogLocalizer() *CatalogLocalizer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	supported := []language.Tag{language.English, language.French}
	for _, tag := range supported {
		for key, msg := range defaultMessages[tag] {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("anki: built-in message %s for %s: %v", key, tag, err))
			}
		}
	}
	return &CatalogLocalizer{
		catalog:   b,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}
}

// Set registers or overrides a message for a language. It must not be called
// concurrently with Text.
func (c *CatalogLocalizer) Set(lang language.Tag, key, msg string) error {
	if err := c.catalog.SetString(lang, key, msg); err != nil {
		return err
	}
	for _, tag := range c.supported {
		if tag == lang {
			return nil
		}
	}
	c.supported = append(c.supported, lang)
	c.matcher = language.NewMatcher(c.supported)
	return nil
}

func (c *CatalogLocalizer) Text(lang language.Tag, key string, args ...interface{}) string {
	_, idx, _ := c.matcher.Match(lang)
	p := message.NewPrinter(c.supported[idx], message.Catalog(c.catalog))
	return p.Sprintf(key, args...)
}

var defaultLocalizer = NewCatalogLocalizer()
