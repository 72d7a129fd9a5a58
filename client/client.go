package client

import "context"

// Role values for outbound messages. These match the role strings the
// OpenAI chat API expects.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMsg represents a single chat message.
type ChatMsg struct {
	Role    string
	Content string
}

// Stream is a lazy, finite sequence of reply fragments. Recv returns
// the next delta fragment, or io.EOF once the server closes the
// stream. A Stream is not restartable.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// ChatClient defines the interface for chat operations.
// Implementations of ChatClient (such as the openai package's Client
// and the mock package's Client) must implement both methods.
type ChatClient interface {
	// CompleteChat sends the messages and returns the full reply text.
	CompleteChat(ctx context.Context, model string, messages []ChatMsg) (string, error)
	// StreamChat sends the messages and returns the reply as a Stream
	// of delta fragments.
	StreamChat(ctx context.Context, model string, messages []ChatMsg) (Stream, error)
}
