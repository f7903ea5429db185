package outline

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"API & Usage!", "api-usage"},
		{"Intro", "intro"},
		{"  Getting   Started  ", "getting-started"},
		{"Hello, World", "hello-world"},
		{"snake_case stays", "snake_case-stays"},
		{"--Leading and trailing--", "leading-and-trailing"},
		{"What's new in v2.0?", "whats-new-in-v20"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlug_Deterministic(t *testing.T) {
	a := Slug("Release Notes (2024)")
	b := Slug("Release Notes (2024)")
	if a != b {
		t.Errorf("expected identical slugs, got %q and %q", a, b)
	}
}
