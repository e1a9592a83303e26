package service

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeEquityRequest MessageType = "equity_request"

	// Server to client messages
	MessageTypeProgress     MessageType = "progress"
	MessageTypeEquityResult MessageType = "equity_result"
	MessageTypeError        MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Envelope wraps every message on the wire
type Envelope struct {
	Type MessageType `json:"type"`
}

// EquityRequest asks for an equity computation. Cards arrive as the
// two-character notation the recognition service emits ("As", "Td").
type EquityRequest struct {
	Type       MessageType `json:"type"`
	Hero       []string    `json:"hero"`
	Board      []string    `json:"board,omitempty"`
	Opponents  int         `json:"opponents"`
	Iterations int         `json:"iterations,omitempty"`
	Seed       *int64      `json:"seed,omitempty"`
	TimeBudget string      `json:"time_budget,omitempty"` // Go duration string
}

// Progress reports how far a running simulation has come
type Progress struct {
	Type      MessageType `json:"type"`
	Completed int         `json:"completed"`
	Total     int         `json:"total"`
}

// EquityResult carries the final result of a simulation
type EquityResult struct {
	Type          MessageType `json:"type"`
	WinPct        float64     `json:"win_pct"`
	TiePct        float64     `json:"tie_pct"`
	LossPct       float64     `json:"loss_pct"`
	EquityPct     float64     `json:"equity_pct"`
	Iterations    int         `json:"iterations"`
	MarginOfError float64     `json:"margin_of_error"`
	Degraded      bool        `json:"degraded,omitempty"`
	ElapsedMs     int64       `json:"elapsed_ms"`
}

// ErrorMessage reports a rejected request
type ErrorMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
