package nlu

import (
	"fmt"
	"sort"
	"strings"
)

// systemPrompt frames the classification task. Providers append the
// per-request context built by buildPrompt.
const systemPrompt = `You are Tracy, the voice assistant of the AceTransit courier app.
Classify the user's utterance and reply with a single JSON object, no markdown, no prose:

{"intent": "...", "action": {"type": "...", "navigateTo": "...", "extractedData": {...}, "nextStep": 0}, "response": "...", "confidence": 0.0, "needsMoreInfo": false}

Valid intents: navigate, startBooking, bookingAction, paymentAction, setField, help, stop, unclear.
Valid action types: navigate, setField, nextStep, submit, pay.
Valid pages: /, /booking, /tracking, /profile, /payment, /chat, /auth/login, /auth/signup.
Booking fields: senderName, senderPhone, pickupAddress, pickupCity, receiverName, receiverPhone, dropoffAddress, dropoffCity, packageType, weight, dimensions.length, dimensions.width, dimensions.height, deliverySpeed, pickupDate, pickupTime.
Known cities: Karachi, Lahore, Islamabad, Rawalpindi, Faisalabad, Multan, Peshawar, Quetta.
The response field is spoken aloud: keep it short, friendly and directive.
If you cannot tell what the user wants, use intent "unclear" with confidence below 0.5.`

// buildPrompt renders the request context for a single-prompt provider.
func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Current page: %s\n", req.CurrentPage)
	if req.CurrentStep > 0 {
		fmt.Fprintf(&b, "Current booking step: %d\n", req.CurrentStep)
	}

	if len(req.FormData) > 0 {
		b.WriteString("Form so far:\n")
		keys := make([]string, 0, len(req.FormData))
		for k := range req.FormData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, req.FormData[k])
		}
	}

	if len(req.ConversationHistory) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, t := range req.ConversationHistory {
			fmt.Fprintf(&b, "  %s: %s\n", t.Role, t.Text)
		}
	}

	fmt.Fprintf(&b, "\nUser said: %q\n", req.UserText)
	return b.String()
}
