package booking

// Field describes one guided-flow form field.
type Field struct {
	// ID is the form store identifier, dotted for nested fields.
	ID string

	// Label is the human name spoken back to the user.
	Label string

	// Prompt is the question the assistant asks for this field.
	Prompt string

	// Optional fields accept a "skip" reply.
	Optional bool
}

// Step bounds for the guided booking flow.
const (
	FirstStep = 1
	LastStep  = 4
)

// flowByStep defines the total traversal order within each step.
// The collection is immutable; FieldsForStep returns it directly.
var flowByStep = map[int][]Field{
	1: {
		{ID: "senderName", Label: "sender name", Prompt: "Sender name?"},
		{ID: "senderPhone", Label: "sender phone", Prompt: "Sender phone number?"},
		{ID: "pickupAddress", Label: "pickup address", Prompt: "Pickup address? You can also say: detect my location."},
		{ID: "pickupCity", Label: "pickup city", Prompt: "Pickup city?"},
	},
	2: {
		{ID: "receiverName", Label: "receiver name", Prompt: "Receiver name?"},
		{ID: "receiverPhone", Label: "receiver phone", Prompt: "Receiver phone number?"},
		{ID: "dropoffAddress", Label: "dropoff address", Prompt: "Dropoff address?"},
		{ID: "dropoffCity", Label: "dropoff city", Prompt: "Dropoff city?"},
	},
	3: {
		{ID: "packageType", Label: "package type", Prompt: "Package type? For example: parcel, document, fragile, electronics, food."},
		{ID: "weight", Label: "weight", Prompt: "Package weight in kilograms? For example: 2."},
		{ID: "dimensions.length", Label: "length", Prompt: "Package length in centimeters? Say a number, or say skip.", Optional: true},
		{ID: "dimensions.width", Label: "width", Prompt: "Package width in centimeters? Say a number, or say skip.", Optional: true},
		{ID: "dimensions.height", Label: "height", Prompt: "Package height in centimeters? Say a number, or say skip.", Optional: true},
	},
	4: {
		{ID: "deliverySpeed", Label: "delivery speed", Prompt: "Delivery speed? Say standard, express, or fast track."},
		{ID: "pickupDate", Label: "pickup date", Prompt: "Pickup date? Say today, tomorrow, or a date like 2025-12-23."},
		{ID: "pickupTime", Label: "pickup time", Prompt: "Pickup time? Say a time like 14:30."},
	},
}

// FieldsForStep returns the ordered field list for a step.
// Unknown steps fall back to step 1, matching the host form's behavior.
func FieldsForStep(step int) []Field {
	if fields, ok := flowByStep[step]; ok {
		return fields
	}
	return flowByStep[FirstStep]
}
