package utils

import "testing"

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("SHOTBOARD_TEST_EMPTY", "")
	t.Setenv("SHOTBOARD_TEST_INT", "12")
	t.Setenv("SHOTBOARD_TEST_BAD_INT", "twelve")
	t.Setenv("SHOTBOARD_TEST_BOOL", "false")

	if got := GetEnv("SHOTBOARD_TEST_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("empty value should fall back, got %q", got)
	}
	if got := GetEnvInt("SHOTBOARD_TEST_INT", 1); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := GetEnvInt("SHOTBOARD_TEST_BAD_INT", 1); got != 1 {
		t.Fatalf("expected fallback for non-numeric value, got %d", got)
	}
	if got := GetEnvBool("SHOTBOARD_TEST_BOOL", true); got {
		t.Fatalf("expected explicit false to win")
	}
	if got := GetEnvBool("SHOTBOARD_TEST_UNSET", true); !got {
		t.Fatalf("expected default for unset variable")
	}
}
