package anki

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var errTokenizerDone = errors.New("tokenizer: no tokens left")

// TemplateError is implemented by every structured error raised while
// parsing or rendering a template. Render converts them into an HTML
// explanation instead of returning them.
type TemplateError interface {
	error
	// Message returns the explanation in the requested language.
	Message(l Localizer, lang language.Tag) string
}

// NoClosingBracketsError is returned when a handlebar is opened but never closed.
type NoClosingBracketsError struct {
	Remaining string
}

func (e *NoClosingBracketsError) Error() string {
	return fmt.Sprintf("missing closing brackets in %q", e.Remaining)
}

func (e *NoClosingBracketsError) Message(l Localizer, lang language.Tag) string {
	return l.Text(lang, MsgNoClosingBrackets, e.Remaining)
}

// ConditionalNotClosedError is returned when the template ends while a
// conditional section is still open.
type ConditionalNotClosedError struct {
	Key string
}

func (e *ConditionalNotClosedError) Error() string {
	return fmt.Sprintf("conditional %q is not closed", e.Key)
}

func (e *ConditionalNotClosedError) Message(l Localizer, lang language.Tag) string {
	return l.Text(lang, MsgConditionalNotClosed, e.Key)
}

// WrongConditionalClosedError is returned when a closing tag does not match
// the innermost open conditional.
type WrongConditionalClosedError struct {
	Found    string
	Expected string
}

func (e *WrongConditionalClosedError) Error() string {
	return fmt.Sprintf("found closing tag %q, expected %q", e.Found, e.Expected)
}

func (e *WrongConditionalClosedError) Message(l Localizer, lang language.Tag) string {
	return l.Text(lang, MsgWrongConditionalClosed, e.Found, e.Expected)
}

// ConditionalNotOpenError is returned for a closing tag with no open conditional.
type ConditionalNotOpenError struct {
	Key string
}

func (e *ConditionalNotOpenError) Error() string {
	return fmt.Sprintf("closing tag %q has no matching opening tag", e.Key)
}

func (e *ConditionalNotOpenError) Message(l Localizer, lang language.Tag) string {
	return l.Text(lang, MsgConditionalNotOpen, e.Key)
}

// FieldNotFoundError is returned when a replacement refers to a field that
// the note does not have.
type FieldNotFoundError struct {
	Filters []string
	Key     string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found", e.handle())
}

func (e *FieldNotFoundError) Message(l Localizer, lang language.Tag) string {
	return l.Text(lang, MsgFieldNotFound, e.handle(), e.Key)
}

// handle rebuilds the handlebar content as the user wrote it.
func (e *FieldNotFoundError) handle() string {
	parts := make([]string, 0, len(e.Filters)+1)
	for i := len(e.Filters) - 1; i >= 0; i-- {
		parts = append(parts, e.Filters[i])
	}
	return strings.Join(append(parts, e.Key), ":")
}
