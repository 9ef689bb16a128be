package sanitize

import (
	"strings"
	"testing"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.es",
		"user.name+tag@example.com",
		"USER_99%x@sub.domain.co",
	}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"missing-at.example.com",
		"user@nodot",
		"user@domain.c",
		"user@domain.",
	}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}

func TestTextEscapesHTML(t *testing.T) {
	got := Text(`  <script>alert("x")</script>  `)
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Fatalf("unescaped HTML in output: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag, got %q", got)
	}
}

func TestTextTrimIdempotent(t *testing.T) {
	got := Text("  hola  ")
	if got != strings.TrimSpace(got) {
		t.Fatalf("output not trim-stable: %q", got)
	}
	if got != "hola" {
		t.Fatalf("expected %q, got %q", "hola", got)
	}
}

func TestTextEmpty(t *testing.T) {
	if Text("") != "" {
		t.Fatal("expected empty output for empty input")
	}
	if Text("   ") != "" {
		t.Fatal("expected empty output for whitespace input")
	}
}
