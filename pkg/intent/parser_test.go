package intent

import (
	"testing"

	"github.com/acetransit/voicekit/pkg/booking"
)

func TestParseControlWords(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"stop", TypeStop},
		{"cancel that", TypeStop},
		{"never mind", TypeStop},
		{"help", TypeHelp},
		{"what can you do", TypeHelp},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); got.Type != tc.want {
			t.Errorf("Parse(%q).Type = %v, want %v", tc.in, got.Type, tc.want)
		}
	}
}

func TestParseStartBooking(t *testing.T) {
	for _, s := range []string{"start booking", "book a delivery", "place an order", "hey tracy create a booking"} {
		if got := Parse(s); got.Type != TypeStartBooking {
			t.Errorf("Parse(%q).Type = %v, want startBooking", s, got.Type)
		}
	}
}

func TestParseBookingActions(t *testing.T) {
	cases := []struct {
		in   string
		want booking.Action
	}{
		{"next", booking.ActionNext},
		{"continue", booking.ActionNext},
		{"go back", booking.ActionBack},
		{"previous", booking.ActionBack},
		{"detect my location", booking.ActionDetectLocation},
		{"use current location", booking.ActionDetectLocation},
		{"submit", booking.ActionSubmit},
		{"proceed to payment", booking.ActionSubmit},
	}
	for _, tc := range cases {
		got := Parse(tc.in)
		if got.Type != TypeBookingAction || got.Action != tc.want {
			t.Errorf("Parse(%q) = %+v, want bookingAction %v", tc.in, got, tc.want)
		}
	}
}

// Commands outrank data: "next city please" must advance the flow, not set
// a city field.
func TestParsePriority(t *testing.T) {
	got := Parse("next city please")
	if got.Type != TypeBookingAction || got.Action != booking.ActionNext {
		t.Fatalf("Parse(\"next city please\") = %+v, want bookingAction next", got)
	}
}

func TestParsePayment(t *testing.T) {
	got := Parse("pay now")
	if got.Type != TypePaymentAction || got.Action != booking.ActionPay {
		t.Errorf("Parse(\"pay now\") = %+v", got)
	}
}

func TestParseNavigate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tracking", RouteTrack},
		{"track my order", RouteTrack},
		{"dashboard", RouteHome},
		{"profile", RouteProfile},
		{"checkout", RoutePayment},
		{"chat", RouteChat},
		{"sign in", RouteLogin},
		{"create account", RouteSignup},
		{"go to /profile", RouteProfile},
	}
	for _, tc := range cases {
		got := Parse(tc.in)
		if got.Type != TypeNavigate || got.Path != tc.want {
			t.Errorf("Parse(%q) = %+v, want navigate %s", tc.in, got, tc.want)
		}
	}
}

func TestParseSetField(t *testing.T) {
	t.Run("booking field keeps value casing", func(t *testing.T) {
		got := Parse("sender name is Ali")
		if got.Type != TypeSetField || got.Scope != booking.ScopeBooking ||
			got.Field != "senderName" || got.Value != "Ali" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("phone label variant", func(t *testing.T) {
		got := Parse("receiver number is 0311 1111111")
		if got.Field != "receiverPhone" || got.Value != "0311 1111111" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("dotted dimension field", func(t *testing.T) {
		got := Parse("length is 30")
		if got.Field != "dimensions.length" || got.Scope != booking.ScopeBooking {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("login email", func(t *testing.T) {
		got := Parse("email is user@example.com")
		if got.Scope != booking.ScopeLogin || got.Field != "email" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("label without value is unknown", func(t *testing.T) {
		if got := Parse("sender name is"); got.Type != TypeUnknown {
			t.Errorf("got %+v", got)
		}
	})
}

func TestParseUnknown(t *testing.T) {
	for _, s := range []string{"", "asdfgh", "how are you doing"} {
		if got := Parse(s); got.Type != TypeUnknown {
			t.Errorf("Parse(%q) = %+v, want unknown", s, got)
		}
	}
}
