package markup

import (
	"strings"
	"testing"
)

func TestBoldEscapesValue(t *testing.T) {
	got := Bold("Pike & <Perch>")
	want := "<b>Pike &amp; &lt;Perch&gt;</b>"
	if got != want {
		t.Errorf("Bold() = %q, want %q", got, want)
	}
}

func TestPlainTextStripsTags(t *testing.T) {
	text := "🌊 <b>Lake &amp; Pond</b>\n📍 Depth: 4-8 m\n\n🎣 <b>Bite forecast:</b>"

	got := PlainText(text)

	if strings.Contains(got, "<b>") || strings.Contains(got, "</b>") {
		t.Errorf("PlainText() left tags in output: %q", got)
	}
	if !strings.Contains(got, "🌊 Lake & Pond\n📍 Depth: 4-8 m") {
		t.Errorf("PlainText() lost text or line breaks: %q", got)
	}
	if !strings.Contains(got, "Bite forecast:") {
		t.Errorf("PlainText() lost trailing text: %q", got)
	}
}

func TestPlainTextWithoutMarkup(t *testing.T) {
	got := PlainText("just text")
	if got != "just text" {
		t.Errorf("PlainText() = %q, want %q", got, "just text")
	}
}
