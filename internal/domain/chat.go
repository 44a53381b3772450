package domain

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a client-held conversation. History is append-only
// and echoed back verbatim; the server keeps no conversation state.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Intent is the closed set of things a chat message can ask the copilot to do.
type Intent string

const (
	IntentAsk    Intent = "ask"
	IntentBuy    Intent = "buy"
	IntentSell   Intent = "sell"
	IntentLaunch Intent = "launch"
	IntentChat   Intent = "chat"
)

// Valid reports whether the intent is a member of the closed set.
func (i Intent) Valid() bool {
	switch i {
	case IntentAsk, IntentBuy, IntentSell, IntentLaunch, IntentChat:
		return true
	}
	return false
}

// Classification is the result of the single intent-classification step.
type Classification struct {
	Intent   Intent            `json:"intent"`
	Entities map[string]string `json:"entities"`
}

// Action describes a token operation the frontend should execute on behalf of
// a buy/sell/launch intent.
type Action struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params"`
}
