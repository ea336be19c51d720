package extract

import (
	"testing"
	"time"
)

// fixedClock pins the extractor to 2025-12-22 so today/tomorrow are stable.
func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 12, 22, 10, 30, 0, 0, time.UTC)
	}
}

func TestExtractPhone(t *testing.T) {
	e := New(WithClock(fixedClock()))

	t.Run("scrubs formatting", func(t *testing.T) {
		if got := e.Extract("senderPhone", "0300-123 4567"); got != "03001234567" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("spoken digits with words", func(t *testing.T) {
		if got := e.Extract("receiverPhone", "it's 0311 111 1111"); got != "03111111111" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("too few digits falls back to raw text", func(t *testing.T) {
		if got := e.Extract("senderPhone", "12345"); got != "12345" {
			t.Errorf("got %q", got)
		}
		// Never empty, never an error: the engine confirms the literal.
		if got := e.Extract("senderPhone", "no number"); got != "no number" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("configurable minimum", func(t *testing.T) {
		e7 := New(WithMinPhoneDigits(7))
		if got := e7.Extract("senderPhone", "123-4567"); got != "1234567" {
			t.Errorf("got %q", got)
		}
	})
}

func TestExtractWeight(t *testing.T) {
	e := New()

	cases := []struct{ in, want string }{
		{"5 kilos", "5"},
		{"2.5 kg", "2.5"},
		{"about 12", "12"},
		{"heavy", "heavy"},
	}
	for _, tc := range cases {
		if got := e.Extract("weight", tc.in); got != tc.want {
			t.Errorf("Extract(weight, %q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractDate(t *testing.T) {
	e := New(WithClock(fixedClock()))

	cases := []struct{ name, in, want string }{
		{"today", "today", "2025-12-22"},
		{"tomorrow", "tomorrow", "2025-12-23"},
		{"iso passthrough", "2025-12-30", "2025-12-30"},
		{"iso embedded", "on 2025-12-30 please", "2025-12-30"},
		{"slash date day first", "23/12/2025", "2025-12-23"},
		{"free text", "23 december 2025", "2025-12-23"},
		{"free text month first", "december 23 2025", "2025-12-23"},
		{"unparseable stays verbatim", "sometime next week", "sometime next week"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.Extract("pickupDate", tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractTime(t *testing.T) {
	e := New()

	cases := []struct{ name, in, want string }{
		{"afternoon", "2 pm", "14:00"},
		{"with minutes", "2:30pm", "14:30"},
		{"noon", "12 pm", "12:00"},
		{"midnight", "12 am", "00:00"},
		{"morning", "9 am", "09:00"},
		{"bare 24h", "14:30", "14:30"},
		{"unparseable stays verbatim", "whenever", "whenever"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.Extract("pickupTime", tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractCity(t *testing.T) {
	e := New()

	t.Run("exact", func(t *testing.T) {
		if got := e.Extract("pickupCity", "Karachi"); got != "Karachi" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("substring and canonical casing", func(t *testing.T) {
		if got := e.Extract("dropoffCity", "deliver to lahore please"); got != "Lahore" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unknown city stays verbatim", func(t *testing.T) {
		if got := e.Extract("pickupCity", "Gotham"); got != "Gotham" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("custom gazetteer", func(t *testing.T) {
		custom := New(WithCities([]string{"Metropolis"}))
		if got := custom.Extract("pickupCity", "from metropolis"); got != "Metropolis" {
			t.Errorf("got %q", got)
		}
	})
}

func TestExtractDefaults(t *testing.T) {
	e := New()

	if got := e.Extract("senderName", "  Ali  "); got != "Ali" {
		t.Errorf("default field should trim: got %q", got)
	}
	if got := e.Extract("senderName", ""); got != "" {
		t.Errorf("empty input should return empty, got %q", got)
	}
	if got := e.Extract("dimensions.length", "30"); got != "30" {
		t.Errorf("got %q", got)
	}
}
