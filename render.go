package anki

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// TemplateIsEmpty reports whether the tree would render no field content for
// the given non-empty fields. Filters are not run; text always counts as
// content. It never fails: rendering reports unknown node types instead.
func (n *Node) TemplateIsEmpty(nonEmpty FieldSet) bool {
	switch n.Type {
	case NodeEmpty:
		return true
	case NodeText:
		return false
	case NodeReplacement:
		return !nonEmpty.Has(n.Key)
	case NodeConditional:
		return !nonEmpty.Has(n.Key) || n.Child.TemplateIsEmpty(nonEmpty)
	case NodeNegatedConditional:
		return nonEmpty.Has(n.Key) || n.Child.TemplateIsEmpty(nonEmpty)
	case NodeSequence:
		for _, child := range n.Children {
			if !child.TemplateIsEmpty(nonEmpty) {
				return false
			}
		}
		return true
	default:
		// Unknown nodes count as content, like a template that does not parse.
		return false
	}
}

// renderState is what one render pass threads through the tree.
type renderState struct {
	r        *Renderer
	fields   map[string]string
	nonEmpty FieldSet
	lang     language.Tag
	sb       *strings.Builder
}

// RenderInto renders node into sb. It returns FieldNotFoundError, or an error
// for a node of unknown type. Filter failures are replaced by a placeholder
// in the output.
func (r *Renderer) RenderInto(node *Node, fields map[string]string, nonEmpty FieldSet, lang language.Tag, sb *strings.Builder) error {
	st := &renderState{r: r, fields: fields, nonEmpty: nonEmpty, lang: lang, sb: sb}
	return st.render(node)
}

func (st *renderState) render(n *Node) error {
	switch n.Type {
	case NodeEmpty:
		return nil
	case NodeText:
		st.sb.WriteString(n.Text)
		return nil
	case NodeReplacement:
		return st.renderReplacement(n)
	case NodeConditional:
		if st.nonEmpty.Has(n.Key) {
			return st.render(n.Child)
		}
		return nil
	case NodeNegatedConditional:
		if !st.nonEmpty.Has(n.Key) {
			return st.render(n.Child)
		}
		return nil
	case NodeSequence:
		for _, child := range n.Children {
			if err := st.render(child); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown node type encountered during rendering: %v", n.Type)
	}
}

func (st *renderState) renderReplacement(n *Node) error {
	text, ok := st.fields[n.Key]
	if !ok {
		// {{filter:}} renders the filter output for an empty value.
		if strings.TrimSpace(n.Key) != "" || len(n.Filters) == 0 {
			return &FieldNotFoundError{Filters: n.Filters, Key: n.Key}
		}
	}
	for _, filter := range n.Filters {
		text = st.applyFilter(text, filter, n)
	}
	st.sb.WriteString(text)
	return nil
}

// applyFilter runs one filter. Unknown filters pass the text through; a
// failing filter is replaced by a localized error placeholder.
func (st *renderState) applyFilter(text, filter string, n *Node) (out string) {
	name, extra := splitFilter(filter)
	fn, ok := st.r.filters[name]
	if !ok {
		return text
	}
	fc := FilterContext{
		Name:      name,
		Extra:     extra,
		FieldName: n.Key,
		Tag:       n.Tag,
		Lang:      st.lang,
		Localizer: st.r.localizer,
	}
	placeholder := func() string {
		return st.r.localizer.Text(st.lang, MsgFilterError, name)
	}
	defer func() {
		if rec := recover(); rec != nil {
			st.r.logger.Error("Filter panicked", zap.String("filter", filter), zap.String("field", n.Key), zap.Any("panic", rec))
			out = placeholder()
		}
	}()
	res, err := fn(text, fc)
	if err != nil {
		st.r.logger.Warn("Error applying filter", zap.String("filter", filter), zap.String("field", n.Key), zap.Error(err))
		return placeholder()
	}
	return res
}
