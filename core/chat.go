package core

import (
	"context"
	"io"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/lmchat/client"
)

// flusher is implemented by buffered writers that need an explicit
// flush to make streamed fragments visible as they arrive.
type flusher interface {
	Flush() error
}

// SendMessage sends one user message using the given client and
// config and renders the reply to out. In streaming mode each
// non-empty delta fragment is written and flushed immediately; in
// either mode the reply ends with exactly one newline.
func SendMessage(ctx context.Context, c client.ChatClient, config ChatConfig, message string, out io.Writer) (err error) {
	defer Return(&err)

	model := NewModels().Resolve(config.Model)
	msgs := []client.ChatMsg{
		{Role: client.RoleUser, Content: message},
	}

	Debug("sending %q to %s as model %s, stream=%v", message, config.BaseURL, model, config.Stream)

	if !config.Stream {
		var response string
		response, err = c.CompleteChat(ctx, model, msgs)
		if err != nil {
			return
		}
		Fpf(out, "%s\n", response)
		return
	}

	stream, err := c.StreamChat(ctx, model, msgs)
	if err != nil {
		return
	}
	defer stream.Close()
	for {
		var frag string
		frag, err = stream.Recv()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return
		}
		// chunks with absent or empty content contribute no output
		if frag == "" {
			continue
		}
		Fpf(out, "%s", frag)
		err = flush(out)
		Ck(err)
	}
	Fpf(out, "\n")
	err = flush(out)
	Ck(err)
	return
}

func flush(out io.Writer) error {
	if f, ok := out.(flusher); ok {
		return f.Flush()
	}
	return nil
}
