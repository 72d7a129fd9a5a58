package mock

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/stevegt/lmchat/client"
)

// Client is a mock LLM client for testing.
// It implements the ChatClient interface and returns pre-configured
// responses based on the model name. Tests can script full replies,
// streamed fragment sequences, and errors, and can inspect the calls
// that were made.
type Client struct {
	mu        sync.Mutex
	Responses map[string]string   // model name -> full reply
	Fragments map[string][]string // model name -> streamed fragments
	Fail      error               // returned by both methods when set
	Calls     int                 // number of chat calls made
	LastModel string              // model from the most recent call
	LastMsgs  []client.ChatMsg    // messages from the most recent call
}

// NewClient creates a new mock client.
func NewClient() *Client {
	return &Client{
		Responses: make(map[string]string),
		Fragments: make(map[string][]string),
	}
}

// SetResponse sets the full reply for a given model name. Streaming
// calls for the same model return the reply as a single fragment
// unless SetFragments was also called.
func (c *Client) SetResponse(model, response string) {
	c.Responses[model] = response
}

// SetFragments sets the streamed fragment sequence for a given model
// name. The non-streaming reply for the same model is the
// concatenation of the fragments.
func (c *Client) SetFragments(model string, fragments ...string) {
	c.Fragments[model] = fragments
}

func (c *Client) record(model string, msgs []client.ChatMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	c.LastModel = model
	c.LastMsgs = msgs
}

func (c *Client) reply(model string) string {
	if frags, ok := c.Fragments[model]; ok {
		return strings.Join(frags, "")
	}
	response, ok := c.Responses[model]
	if !ok {
		response = "default mock response"
	}
	return response
}

// CompleteChat returns the scripted reply for the model, or a default
// response if none has been configured. This method implements the
// ChatClient interface.
func (c *Client) CompleteChat(ctx context.Context, model string, msgs []client.ChatMsg) (string, error) {
	c.record(model, msgs)
	if c.Fail != nil {
		return "", c.Fail
	}
	return c.reply(model), nil
}

// StreamChat returns the scripted fragments for the model, falling
// back to the full reply as one fragment. This method implements the
// ChatClient interface.
func (c *Client) StreamChat(ctx context.Context, model string, msgs []client.ChatMsg) (client.Stream, error) {
	c.record(model, msgs)
	if c.Fail != nil {
		return nil, c.Fail
	}
	frags, ok := c.Fragments[model]
	if !ok {
		frags = []string{c.reply(model)}
	}
	return &stream{fragments: frags}, nil
}

// stream replays scripted fragments, then io.EOF.
type stream struct {
	fragments []string
	next      int
}

func (s *stream) Recv() (string, error) {
	if s.next >= len(s.fragments) {
		return "", io.EOF
	}
	frag := s.fragments[s.next]
	s.next++
	return frag, nil
}

func (s *stream) Close() error { return nil }

// Assert that Client implements client.ChatClient.
var _ client.ChatClient = (*Client)(nil)
