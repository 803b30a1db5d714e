// Package anki renders flashcard templates: "{{Field}}" replacements,
// "{{#Field}}...{{/Field}}" and "{{^Field}}...{{/Field}}" sections and
// "{{filter:Field}}" pipelines such as cloze deletions and furigana.
//
// A template is lexed by the Tokenizer, parsed into an immutable Node tree
// (cached per template string by TemplateCache) and rendered by a Renderer,
// which turns every template error into an HTML explanation.
package anki

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// DefaultHelpURL is linked from the explanation shown for a broken template.
const DefaultHelpURL = "https://docs.ankiweb.net/templates/errors.html"

// Renderer renders templates with a shared parse cache and filter registry.
// It is safe for concurrent use.
type Renderer struct {
	cache     *TemplateCache
	localizer Localizer
	logger    *zap.Logger
	helpURL   string
	filters   map[string]FilterFunc
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCache makes the renderer use c instead of the package-level cache.
func WithCache(c *TemplateCache) Option {
	return func(r *Renderer) { r.cache = c }
}

// WithLocalizer sets the source of user-facing messages.
func WithLocalizer(l Localizer) Option {
	return func(r *Renderer) { r.localizer = l }
}

// WithLogger sets the logger used to report failing filters and templates.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithHelpURL sets the link shown below template error explanations.
func WithHelpURL(url string) Option {
	return func(r *Renderer) { r.helpURL = url }
}

// WithFilter registers an additional filter, or replaces a built-in one.
func WithFilter(name string, fn FilterFunc) Option {
	return func(r *Renderer) { r.filters[name] = fn }
}

// NewRenderer creates a Renderer using the built-in filters.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		cache:     defaultTemplateCache,
		localizer: defaultLocalizer,
		logger:    zap.NewNop(),
		helpURL:   DefaultHelpURL,
		filters:   make(map[string]FilterFunc, len(GlobalFilters)),
	}
	for name, fn := range GlobalFilters {
		r.filters[name] = fn
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parse returns the cached tree of template.
func (r *Renderer) Parse(template string) (*Node, error) {
	return r.cache.Parse(template)
}

// Render renders template with fields for one side of a card. It never
// fails: a template error is rendered as an explanation of the problem.
func (r *Renderer) Render(template string, fields map[string]string, question bool, lang language.Tag) string {
	node, err := r.cache.Parse(template)
	if err == nil {
		var sb strings.Builder
		if err = r.RenderInto(node, fields, NonEmptyFields(fields), lang, &sb); err == nil {
			return sb.String()
		}
	}
	r.logger.Debug("Template has a problem", zap.Bool("question", question), zap.Error(err))
	return r.ErrorHTML(err, question, lang)
}

// ErrorHTML explains err for the front (question) or back of a card.
func (r *Renderer) ErrorHTML(err error, question bool, lang language.Tag) string {
	var msg string
	var te TemplateError
	if errors.As(err, &te) {
		msg = te.Message(r.localizer, lang)
	} else {
		msg = err.Error()
	}
	side := MsgBack
	if question {
		side = MsgFront
	}
	explanation := r.localizer.Text(lang, MsgTemplateProblem, r.localizer.Text(lang, side), html.EscapeString(msg))
	more := fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(r.helpURL), r.localizer.Text(lang, MsgMoreInformation))
	return explanation + "<br/>" + more
}

// TemplateIsEmpty reports whether template renders no field content for the
// given non-empty fields. A template that does not parse is not empty here;
// callers deciding whether to generate a card should check Parse first.
func (r *Renderer) TemplateIsEmpty(template string, nonEmpty FieldSet) bool {
	node, err := r.cache.Parse(template)
	if err != nil {
		return false
	}
	return node.TemplateIsEmpty(nonEmpty)
}

// Localizer returns the renderer's message source.
func (r *Renderer) Localizer() Localizer {
	return r.localizer
}

var defaultRenderer = NewRenderer()

// Render renders template with the package-level renderer.
func Render(template string, fields map[string]string, question bool, lang language.Tag) string {
	return defaultRenderer.Render(template, fields, question, lang)
}

// TemplateIsEmpty checks template with the package-level renderer.
func TemplateIsEmpty(template string, nonEmpty FieldSet) bool {
	return defaultRenderer.TemplateIsEmpty(template, nonEmpty)
}
