package cardrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteCloze(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		ord      int
		question bool
		want     string
	}{
		{"question", "{{cloze:Text}}", 0, true, "{{cq-1:Text}}"},
		{"answer", "{{cloze:Text}}", 1, false, "{{ca-2:Text}}"},
		{"other filters are kept", "{{text:cloze:Text}}", 0, true, "{{text:cq-1:Text}}"},
		{"typed answer on the question", "{{type:cloze:Text}}", 0, true, "{{type:cloze:Text}}"},
		{"typed answer on the answer", "{{type:cloze:Text}}", 0, false, "{{type:ca-1:Text}}"},
		{
			name:     "typed answer after a field",
			format:   "{{Front}} {{type:cloze:Text}}",
			ord:      0,
			question: true,
			want:     "{{Front}} {{type:cloze:Text}}",
		},
		{
			name:     "several handles",
			format:   "{{cloze:Text}}<br>{{type:cloze:Text}}<br>{{cloze:Extra}}",
			ord:      2,
			question: true,
			want:     "{{cq-3:Text}}<br>{{type:cloze:Text}}<br>{{cq-3:Extra}}",
		},
		{"legacy handle", "{{=<% %>=}}<%cloze:Text%>", 0, true, "{{=<% %>=}}<%cq-1:Text%>"},
		{"no cloze", "{{Front}}", 0, true, "{{Front}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteCloze(tt.format, tt.ord, tt.question))
		})
	}
}

func TestClozeFields(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"{{Front}}", nil},
		{"{{cloze:Text}} {{cloze:Extra}}", []string{"Text", "Extra"}},
		{"{{type:cloze:Text}}", []string{"Text"}},
		{"{{=<% %>=}}<%cloze:Legacy%>", []string{"Legacy"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, ClozeFields(tt.format))
		})
	}
}

func TestClozeNumbersInFields(t *testing.T) {
	fields := map[string]string{
		"Text":  "{{c2::a}} {{c1::b}}",
		"Extra": "{{c4::c}} {{c2::d}}",
		"Plain": "nothing",
	}
	assert.Equal(t, []int{1, 2, 4}, ClozeNumbersInFields(fields))
	assert.Nil(t, ClozeNumbersInFields(map[string]string{}))
}
