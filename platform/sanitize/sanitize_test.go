package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Consultoría mensual", "Consultoría mensual"},
		{"simple tags", "<p>Hola <b>mundo</b></p>", "Hola mundo"},
		{"script tag", `<script>alert("x")</script>texto`, `alert("x")texto`},
		{"encoded tag", "&lt;img src=x&gt;texto", "texto"},
		{"entities", "Uno &amp; dos &quot;tres&quot;", `Uno & dos "tres"`},
		{"surrounding whitespace", "  <span>texto</span>  ", "texto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Fatalf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextPtr(t *testing.T) {
	if got := TextPtr(nil); got != nil {
		t.Fatalf("TextPtr(nil) = %v, want nil", got)
	}

	input := "<b>negrita</b>"
	got := TextPtr(&input)
	if got == nil || *got != "negrita" {
		t.Fatalf("TextPtr = %v", got)
	}
}
