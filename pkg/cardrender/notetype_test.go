package cardrender

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const clozeNoteTypeYAML = `
name: Cloze
kind: cloze
fields: [Text, Extra]
templates:
  - name: Cloze
    qfmt: "{{cloze:Text}}"
    afmt: "{{cloze:Text}}<br>{{Extra}}"
`

func TestParseNoteType(t *testing.T) {
	nt, err := ParseNoteType(strings.NewReader(clozeNoteTypeYAML))
	require.NoError(t, err)

	want := &NoteType{
		Name:   "Cloze",
		Kind:   KindCloze,
		Fields: []string{"Text", "Extra"},
		Templates: []CardTemplate{
			{Name: "Cloze", QFmt: "{{cloze:Text}}", AFmt: "{{cloze:Text}}<br>{{Extra}}"},
		},
	}
	assert.Equal(t, want, nt)
	assert.True(t, nt.IsCloze())
}

func TestParseNoteType_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty document", "", "note type is empty"},
		{"unknown kind", "name: X\nkind: weird\ntemplates: [{name: A}]", `unknown note type kind "weird"`},
		{"unknown key", "name: X\ncolour: red\ntemplates: [{name: A}]", "failed to decode note type"},
		{"no templates", "name: X\nfields: [A]", `note type "X" has no templates`},
		{"duplicate field", "name: X\nfields: [A, A]\ntemplates: [{name: A}]", `duplicate field "A"`},
		{"blank field", "name: X\nfields: [' ']\ntemplates: [{name: A}]", "field without a name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNoteType(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadNoteType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloze.yaml")
	require.NoError(t, os.WriteFile(path, []byte(clozeNoteTypeYAML), 0o644))

	nt, err := LoadNoteType(path)
	require.NoError(t, err)
	assert.Equal(t, "Cloze", nt.Name)

	_, err = LoadNoteType(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestKind_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(NoteType{Name: "Basic", Templates: []CardTemplate{{Name: "Card 1"}}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: standard")
}

func TestNoteType_Template(t *testing.T) {
	basic := &NoteType{Name: "Basic", Templates: []CardTemplate{{Name: "Card 1"}, {Name: "Card 2"}}}
	tmpl, err := basic.Template(1)
	require.NoError(t, err)
	assert.Equal(t, "Card 2", tmpl.Name)

	_, err = basic.Template(2)
	assert.Error(t, err)
	_, err = basic.Template(-1)
	assert.Error(t, err)

	cloze := &NoteType{Name: "Cloze", Kind: KindCloze, Templates: []CardTemplate{{Name: "Cloze"}}}
	tmpl, err = cloze.Template(7)
	require.NoError(t, err)
	assert.Equal(t, "Cloze", tmpl.Name)
}
