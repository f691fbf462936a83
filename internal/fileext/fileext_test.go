package fileext

import (
	"strings"
	"testing"
)

func TestAllowedFileExtensionsFormats(t *testing.T) {
	human := AllowedFileExtensions()
	if !strings.HasPrefix(human, "png, jpg, jpeg") {
		t.Fatalf("unexpected human-readable list: %q", human)
	}
	accept := AcceptedFileExtensions()
	if !strings.HasPrefix(accept, ".png,.jpg,.jpeg") {
		t.Fatalf("unexpected accept list: %q", accept)
	}
	if strings.Count(accept, ",") != len(Extensions)-1 {
		t.Fatalf("expected %d entries in %q", len(Extensions), accept)
	}
}

func TestAllowed(t *testing.T) {
	cases := map[string]bool{
		"slides.pdf":   true,
		"SLIDES.PDF":   true,
		"notes.md":     true,
		"archive.exe":  false,
		"no-extension": false,
	}
	for name, want := range cases {
		if got := Allowed(name); got != want {
			t.Fatalf("Allowed(%q) = %v, want %v", name, got, want)
		}
	}
}
