package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("T001")
	if err.Category != CategoryRuntime {
		t.Errorf("category %q", err.Category)
	}
	if !strings.Contains(err.Error(), "T001") {
		t.Errorf("code missing from %q", err.Error())
	}
	if err.DocURL == "" {
		t.Error("registered code should carry a doc URL")
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("T999")
	if err.Message != "Unknown error" {
		t.Errorf("message %q", err.Message)
	}
	if err.Error() != "T999: Unknown error" {
		t.Errorf("error %q", err.Error())
	}
}

func TestWrapSupportsErrorsIs(t *testing.T) {
	sentinel := stderrors.New("boom")
	err := New("T101").Wrap(sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("wrapped error not reachable via errors.Is")
	}

	var te *TempoError
	if !stderrors.As(err, &te) || te.Code != "T101" {
		t.Error("errors.As failed to recover the TempoError")
	}
}

func TestFromErrorPassesThrough(t *testing.T) {
	orig := New("T100")
	if got := FromError(orig, "T101"); got != orig {
		t.Error("existing TempoError should pass through unchanged")
	}
	if FromError(nil, "T101") != nil {
		t.Error("nil error should stay nil")
	}
}

func TestFormatIncludesHintAndDocURL(t *testing.T) {
	DisableColors()
	t.Cleanup(EnableColors)

	out := New("T001").WithSuggestion("gate the effect with OnChange").Format()
	for _, want := range []string{"ERROR T001", "Hint:", "OnChange", "Learn more:", "tempo-ui.dev"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}
}
