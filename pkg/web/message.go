package web

// Client-to-server message types.
const (
	MsgTranscript = "transcript"
	MsgStep       = "step"
	MsgLocation   = "location"
	MsgPage       = "page"
)

// Server-to-client event types.
const (
	EvtSpeak    = "speak"
	EvtSetField = "setField"
	EvtAction   = "action"
	EvtNavigate = "navigate"
)

// ClientMessage is what a connected UI sends to the bridge. Type selects
// which of the remaining fields matter.
type ClientMessage struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Step    int    `json:"step,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Event is what the bridge broadcasts to every connected UI.
type Event struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Scope  string `json:"scope,omitempty"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
	Action string `json:"action,omitempty"`
	Path   string `json:"path,omitempty"`
}
