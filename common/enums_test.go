package common

import (
	"errors"
	"testing"
)

func TestParseFragmentKind(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  FragmentKind
		shouldErr bool
	}{
		{"color", "color", FragmentKindColor, false},
		{"Title mixed case", "Title", FragmentKindTitle, false},
		{"LOGO uppercase", "LOGO", FragmentKindLogo, false},
		{"topnav", "topnav", FragmentKindTopnav, false},
		{"sidenav", "sidenav", FragmentKindSidenav, false},
		{"unknown", "footer", FragmentKind(0), true},
		{"empty", "", FragmentKind(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFragmentKind(tt.input)
			if tt.shouldErr {
				if !errors.Is(err, ErrInvalidFragmentKind) {
					t.Errorf("ParseFragmentKind(%q) error = %v, want ErrInvalidFragmentKind", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseFragmentKind(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMustParseFragmentKind(t *testing.T) {
	t.Run("valid value", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("MustParseFragmentKind panicked unexpectedly: %v", r)
			}
		}()
		if got := MustParseFragmentKind("sidenav"); got != FragmentKindSidenav {
			t.Errorf("MustParseFragmentKind(\"sidenav\") = %v, want %v", got, FragmentKindSidenav)
		}
	})

	t.Run("invalid value panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("MustParseFragmentKind should have panicked")
			}
		}()
		MustParseFragmentKind("footer")
	})
}

func TestFragmentKindNames(t *testing.T) {
	names := FragmentKindNames()
	expected := []string{"color", "title", "logo", "topnav", "sidenav"}

	if len(names) != len(expected) {
		t.Fatalf("FragmentKindNames() length = %d, want %d", len(names), len(expected))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("FragmentKindNames()[%d] = %q, want %q", i, names[i], name)
		}
		if k := FragmentKind(i); !k.IsValid() || k.String() != name {
			t.Errorf("FragmentKind(%d) = %q valid %t", i, k.String(), k.IsValid())
		}
	}

	names[0] = "changed"
	if FragmentKindNames()[0] != "color" {
		t.Error("FragmentKindNames() returned shared slice")
	}
	if FragmentKind(42).IsValid() {
		t.Error("FragmentKind(42) reported valid")
	}
	if got := FragmentKind(42).String(); got != "FragmentKind(42)" {
		t.Errorf("FragmentKind(42).String() = %q", got)
	}
}

func TestFragmentKind_UnmarshalText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  FragmentKind
		shouldErr bool
	}{
		{"logo", "logo", FragmentKindLogo, false},
		{"topnav", "TopNav", FragmentKindTopnav, false},
		{"invalid", "header", FragmentKind(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kind FragmentKind
			err := kind.UnmarshalText([]byte(tt.input))
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("UnmarshalText() error = %v", err)
			}
			if kind != tt.expected {
				t.Errorf("UnmarshalText(%q) = %v, want %v", tt.input, kind, tt.expected)
			}
			text, err := kind.MarshalText()
			if err != nil || string(text) != tt.expected.String() {
				t.Errorf("MarshalText() = %q, %v", text, err)
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomeUnchanged, "unchanged"},
		{OutcomeRewritten, "rewritten"},
		{OutcomeFailed, "failed"},
		{OutcomeCancelled, "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.outcome.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
			if got, err := ParseOutcome(tt.expected); err != nil || got != tt.outcome {
				t.Errorf("ParseOutcome(%q) = %v, %v", tt.expected, got, err)
			}
		})
	}
	if got := Outcome(-1).String(); got != "Outcome(-1)" {
		t.Errorf("Outcome(-1).String() = %q", got)
	}
}
