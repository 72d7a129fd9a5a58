package core

import "github.com/stevegt/envi"

// Defaults reproduce the fixed constants for a locally hosted
// OpenAI-compatible server.
const (
	DefaultBaseURL = "http://127.0.0.1:8080/v1"
	DefaultAPIKey  = "dummy"
)

// TestMessage is the fixed message sent by `msg --test`.
const TestMessage = "test"

// ChatConfig carries the connection parameters for one request. It is
// passed explicitly rather than constructed inline so tests can
// substitute endpoints, models, and the network layer.
type ChatConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Stream  bool
}

// NewChatConfig returns a ChatConfig populated from the environment,
// falling back to the fixed local-server defaults. Streaming is on by
// default.
func NewChatConfig() ChatConfig {
	return ChatConfig{
		BaseURL: envi.String("LMCHAT_BASE_URL", DefaultBaseURL),
		APIKey:  envi.String("LMCHAT_API_KEY", DefaultAPIKey),
		Model:   envi.String("LMCHAT_MODEL", DefaultModel),
		Stream:  true,
	}
}
