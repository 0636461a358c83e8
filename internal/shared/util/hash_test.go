package util

import "testing"

func TestHashUserKey(t *testing.T) {
	id := "user-12345"
	got := HashUserKey(id)
	if got != HashUserKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizeFileName(t *testing.T) {
	if _, err := SanitizeFileName("../etc/passwd"); err == nil {
		t.Fatal("expected traversal pattern to be rejected")
	}
	if _, err := SanitizeFileName("  "); err == nil {
		t.Fatal("expected empty name to be rejected")
	}
	got, err := SanitizeFileName("ava/tar.png")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "ava_tar.png" {
		t.Fatalf("expected separators replaced, got %s", got)
	}
}
