package search

import (
	"strings"
	"testing"
)

func TestSanitizeSnippet_PlainText(t *testing.T) {
	got := SanitizeSnippet("Plain text   with  extra   spaces")
	if got != "Plain text with extra spaces" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestSanitizeSnippet_StripsMarkup(t *testing.T) {
	got := SanitizeSnippet(`<p>The population is <b>8.3 million</b> people.</p>`)
	if strings.ContainsAny(got, "<>") {
		t.Errorf("expected markup removed, got %q", got)
	}
	if !strings.Contains(got, "8.3 million") {
		t.Errorf("expected content preserved, got %q", got)
	}
}

func TestSanitizeSnippet_SkipsScriptAndStyle(t *testing.T) {
	got := SanitizeSnippet(`<div>Visible<script>var hidden = 1;</script><style>.x{}</style></div>`)
	if strings.Contains(got, "hidden") || strings.Contains(got, ".x") {
		t.Errorf("expected script/style content removed, got %q", got)
	}
	if !strings.Contains(got, "Visible") {
		t.Errorf("expected visible content kept, got %q", got)
	}
}

func TestSanitizeSnippet_Empty(t *testing.T) {
	if got := SanitizeSnippet(""); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}
