package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/lmchat/client"
)

// chatHandler serves a canned reply both streamed and unstreamed,
// mimicking a local OpenAI-compatible server.
func chatHandler(t *testing.T, fragments []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("error reading request body: %v", err)
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("expected a single user message, got %+v", req.Messages)
		}
		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			for _, frag := range fragments {
				chunk := Spf(`{"id":"1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":%q}}]}`, frag)
				fmt.Fprintf(w, "data: %s\n\n", chunk)
			}
			// a chunk with no choices and one with an absent delta
			// content, as keepalive-style servers emit
			fmt.Fprintf(w, "data: %s\n\n", `{"id":"1","object":"chat.completion.chunk","choices":[]}`)
			fmt.Fprintf(w, "data: %s\n\n", `{"id":"1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{}}]}`)
			fmt.Fprintf(w, "data: [DONE]\n\n")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		full := strings.Join(fragments, "")
		fmt.Fprintf(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, full)
	}
}

func drain(t *testing.T, s client.Stream) string {
	defer s.Close()
	var sb strings.Builder
	for {
		frag, err := s.Recv()
		if err == io.EOF {
			break
		}
		Tassert(t, err == nil, "error receiving fragment: %v", err)
		sb.WriteString(frag)
	}
	return sb.String()
}

// the concatenation of streamed fragments must equal the reply a
// non-streaming call returns for the same input
func TestStreamMatchesComplete(t *testing.T) {
	srv := httptest.NewServer(chatHandler(t, []string{"Hel", "lo", "!"}))
	defer srv.Close()
	c := NewClient(srv.URL+"/v1", "dummy")
	msgs := []client.ChatMsg{{Role: client.RoleUser, Content: "test"}}

	full, err := c.CompleteChat(context.Background(), "mymodel", msgs)
	Tassert(t, err == nil, "error completing chat: %v", err)
	Tassert(t, full == "Hello!", "unexpected reply: %q", full)

	s, err := c.StreamChat(context.Background(), "mymodel", msgs)
	Tassert(t, err == nil, "error starting stream: %v", err)
	streamed := drain(t, s)
	Tassert(t, streamed == full, "stream %q != complete %q", streamed, full)
}

func TestConnectError(t *testing.T) {
	// grab a URL that is no longer listening
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url+"/v1", "dummy")
	msgs := []client.ChatMsg{{Role: client.RoleUser, Content: "test"}}
	_, err := c.CompleteChat(context.Background(), "mymodel", msgs)
	Tassert(t, err != nil, "expected error")
	cerr := client.As(err)
	Tassert(t, cerr != nil, "expected typed error, got %T: %v", err, err)
	Tassert(t, cerr.Kind == client.KindConnect, "unexpected kind: %v, err: %v", cerr.Kind, err)
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1", "dummy")
	msgs := []client.ChatMsg{{Role: client.RoleUser, Content: "test"}}
	_, err := c.CompleteChat(context.Background(), "mymodel", msgs)
	Tassert(t, err != nil, "expected error")
	cerr := client.As(err)
	Tassert(t, cerr != nil, "expected typed error, got %T: %v", err, err)
	Tassert(t, cerr.Kind == client.KindStatus, "unexpected kind: %v, err: %v", cerr.Kind, err)
	Tassert(t, cerr.Status == http.StatusInternalServerError, "unexpected status: %d", cerr.Status)
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "this is not json")
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1", "dummy")
	msgs := []client.ChatMsg{{Role: client.RoleUser, Content: "test"}}
	_, err := c.CompleteChat(context.Background(), "mymodel", msgs)
	Tassert(t, err != nil, "expected error")
	cerr := client.As(err)
	Tassert(t, cerr != nil, "expected typed error, got %T: %v", err, err)
	Tassert(t, cerr.Kind == client.KindDecode, "unexpected kind: %v, err: %v", cerr.Kind, err)
}

// the model identifier is informational and passes through to the
// request unchanged
func TestModelPassthrough(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &req)
		gotModel = req.Model
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1", "dummy")
	msgs := []client.ChatMsg{{Role: client.RoleUser, Content: "test"}}
	_, err := c.CompleteChat(context.Background(), "some/exotic-model", msgs)
	Tassert(t, err == nil, "error completing chat: %v", err)
	Tassert(t, gotModel == "some/exotic-model", "unexpected model: %q", gotModel)
}
