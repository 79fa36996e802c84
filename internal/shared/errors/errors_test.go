package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetTypeUnwrapsWrappedAppErrors(t *testing.T) {
	base := Lookupf("team %q not found", "Gotham Knights")
	wrapped := fmt.Errorf("select team: %w", base)

	if got := GetType(wrapped); got != ErrorTypeLookup {
		t.Fatalf("expected lookup type, got %s", got)
	}
	if !Is(wrapped, ErrorTypeLookup) {
		t.Fatalf("expected Is to match lookup type")
	}
}

func TestGetTypeDefaultsToInternal(t *testing.T) {
	if got := GetType(errors.New("boom")); got != ErrorTypeInternal {
		t.Fatalf("expected internal type, got %s", got)
	}
	if Is(nil, ErrorTypeInternal) {
		t.Fatalf("nil error must not match any type")
	}
}

func TestWrapQueryKeepsCause(t *testing.T) {
	cause := errors.New("relation \"shots\" does not exist")
	err := WrapQuery("shots_by_type", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
	if err.Error() != "query shots_by_type failed: relation \"shots\" does not exist" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
