package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Plain Title", "Plain Title"},
		{`What/Is\This*Title?`, "WhatIsThisTitle"},
		{`a:b"c<d>e|f`, "abcdef"},
		{"  padded  ", "padded"},
		{`\/*?:"<>|`, "video"},
		{"", "video"},
		{"Ünïcödé — fine", "Ünïcödé — fine"},
	}

	for _, test := range tests {
		if got := SanitizeTitle(test.input); got != test.expected {
			t.Errorf("SanitizeTitle(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "a", "b")

	if err := CreateDirectoryIfNotExists(target); err != nil {
		t.Fatalf("Expected directory creation to succeed, got %v", err)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Fatalf("Expected %s to be a directory, got %v / %v", target, info, err)
	}

	// Second call on an existing directory is a no-op.
	if err := CreateDirectoryIfNotExists(target); err != nil {
		t.Errorf("Expected no error for existing directory, got %v", err)
	}
}
