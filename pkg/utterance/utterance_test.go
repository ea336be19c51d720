package utterance

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and trims", "  Start Booking  ", "start booking"},
		{"collapses whitespace", "go   to \t booking", "go to booking"},
		{"strips wake phrase", "Hey Tracy start booking", "start booking"},
		{"wake phrase mid-sentence", "ok hey tracy next", "ok next"},
		{"empty", "", ""},
		{"only wake phrase", "hey tracy", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripWake(t *testing.T) {
	if got := StripWake("Hey Tracy sender name is Ali"); got != "sender name is Ali" {
		t.Errorf("StripWake preserved casing wrong: %q", got)
	}
}

func TestPredicates(t *testing.T) {
	t.Run("affirmative", func(t *testing.T) {
		for _, s := range []string{"yes", "yeah sure", "that is correct", "okay"} {
			if !IsAffirmative(s) {
				t.Errorf("IsAffirmative(%q) = false", s)
			}
		}
		if IsAffirmative("no") || IsAffirmative("") {
			t.Error("affirmative false positives")
		}
	})

	t.Run("negative", func(t *testing.T) {
		for _, s := range []string{"no", "nope", "that's wrong", "cancel"} {
			if !IsNegative(s) {
				t.Errorf("IsNegative(%q) = false", s)
			}
		}
		if IsNegative("yes") || IsNegative("") {
			t.Error("negative false positives")
		}
	})

	t.Run("skip", func(t *testing.T) {
		for _, s := range []string{"skip", "leave it", "not now", "none"} {
			if !IsSkip(s) {
				t.Errorf("IsSkip(%q) = false", s)
			}
		}
		if IsSkip("") {
			t.Error("IsSkip empty input must be false")
		}
	})

	t.Run("keep and change", func(t *testing.T) {
		if !IsKeep("keep it") || !IsKeep("same") {
			t.Error("IsKeep misses")
		}
		if !IsChange("change") || !IsChange("update it") {
			t.Error("IsChange misses")
		}
		if IsKeep("") || IsChange("") {
			t.Error("empty input must be false")
		}
	})
}
