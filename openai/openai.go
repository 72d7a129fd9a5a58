package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/url"

	gptLib "github.com/sashabaranov/go-openai"
	"github.com/stevegt/lmchat/client"
)

// Client implements the ChatClient interface against any
// OpenAI-compatible endpoint via the go-openai library. The library
// owns the HTTP and SSE details.
type Client struct {
	oai *gptLib.Client
}

// NewClient creates a Client that talks to the server at baseURL
// (e.g. http://127.0.0.1:8080/v1) using the given credential. Local
// servers generally ignore the credential, but the header must be
// present, so a placeholder such as "dummy" works.
func NewClient(baseURL, apiKey string) *Client {
	cfg := gptLib.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{oai: gptLib.NewClientWithConfig(cfg)}
}

// CompleteChat sends the messages and returns the full reply text.
// This method implements the ChatClient interface.
func (c *Client) CompleteChat(ctx context.Context, model string, messages []client.ChatMsg) (string, error) {
	req := gptLib.ChatCompletionRequest{
		Model:    model,
		Messages: convert(messages),
	}
	resp, err := c.oai.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &client.Error{Kind: client.KindDecode, Err: errors.New("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// StreamChat sends the messages and returns the reply as a stream of
// delta fragments. This method implements the ChatClient interface.
func (c *Client) StreamChat(ctx context.Context, model string, messages []client.ChatMsg) (client.Stream, error) {
	req := gptLib.ChatCompletionRequest{
		Model:    model,
		Messages: convert(messages),
		Stream:   true,
	}
	s, err := c.oai.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, classify(err)
	}
	return &stream{s: s}, nil
}

// stream adapts the go-openai stream to the client.Stream interface.
type stream struct {
	s *gptLib.ChatCompletionStream
}

// Recv returns the next delta fragment. Chunks without choices carry
// no content and are skipped; chunks whose delta has no content yield
// an empty fragment. Returns io.EOF when the server closes the
// stream.
func (st *stream) Recv() (string, error) {
	for {
		resp, err := st.s.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", classify(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (st *stream) Close() error { return st.s.Close() }

// convert maps client.ChatMsg messages into OpenAI's
// ChatCompletionMessage format.
func convert(messages []client.ChatMsg) (omsgs []gptLib.ChatCompletionMessage) {
	for _, msg := range messages {
		role := msg.Role
		if role == "" {
			role = gptLib.ChatMessageRoleUser
		}
		omsgs = append(omsgs, gptLib.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	return
}

// classify maps a go-openai error onto the client error taxonomy.
func classify(err error) error {
	var apiErr *gptLib.APIError
	if errors.As(err, &apiErr) {
		return &client.Error{Kind: client.KindStatus, Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *gptLib.RequestError
	if errors.As(err, &reqErr) {
		return &client.Error{Kind: client.KindStatus, Status: reqErr.HTTPStatusCode, Err: err}
	}
	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) {
		return &client.Error{Kind: client.KindConnect, Err: err}
	}
	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &synErr) || errors.As(err, &typeErr) {
		return &client.Error{Kind: client.KindDecode, Err: err}
	}
	return &client.Error{Kind: client.KindOther, Err: err}
}

// Assert that Client implements client.ChatClient.
var _ client.ChatClient = (*Client)(nil)
