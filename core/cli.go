package core

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/lmchat/client"
	"github.com/stevegt/lmchat/openai"
	"github.com/stevegt/lmchat/util"
)

// cmdMsg is the struct for the msg subcommand. The msg subcommand is
// the default command, so `lmchat 'some text'` works without naming
// it.
type cmdMsg struct {
	Test     bool     `short:"t" help:"Send the fixed test message instead of the positional words."`
	NoStream bool     `help:"Wait for the full reply instead of streaming it."`
	Model    string   `short:"m" help:"Model to request; known aliases are resolved, unknown names pass through."`
	BaseURL  string   `name:"base-url" help:"Base URL of the OpenAI-compatible server."`
	APIKey   string   `name:"api-key" help:"Credential sent to the server; local servers usually ignore it."`
	Words    []string `arg:"" optional:"" help:"Message to send; words are joined with spaces."`
}

type cmdModels struct{}

type cmdTc struct {
	Words []string `arg:"" optional:"" help:"Text to count tokens of; words are joined with spaces."`
}

type cmdVersion struct{}

var cli struct {
	Msg     cmdMsg     `cmd:"" default:"withargs" help:"Send a message to the server and print the reply."`
	Models  cmdModels  `cmd:"" help:"List the known model aliases."`
	Tc      cmdTc      `cmd:"" help:"Print the token count of the message."`
	Verbose bool       `short:"v" help:"Show debug information on stderr."`
	Version cmdVersion `cmd:"" help:"Show version of lmchat."`
}

// CliConfig contains the configuration for lmchat's cli
type CliConfig struct {
	// Name is the name of the program
	Name string
	// Description is a short description of the program
	Description string
	// Version is the version of the program
	Version string
	// Exit is the function to call to exit the program
	Exit   func(int)
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Client overrides the network client; tests inject a mock here.
	// When nil, an OpenAI-compatible client is built from the chat
	// config.
	Client client.ChatClient
}

// NewCliConfig returns a new Config struct with default values populated
func NewCliConfig() *CliConfig {
	return &CliConfig{
		Name:        "lmchat",
		Description: "A command-line tool for sending a chat message to a locally hosted OpenAI-compatible server.",
		Version:     CodeVersion(),
		Exit:        func(i int) { os.Exit(i) },
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Cli parses the given arguments and then executes the appropriate
// subcommand.
//
// We use this function instead of kong.Parse() so that we can pass in
// the arguments to parse.  This allows us to more easily test the
// cli subcommands.
func Cli(args []string, config *CliConfig) (rc int, err error) {
	defer Return(&err)

	// capture goadapt stdio
	SetStdio(
		config.Stdin,
		config.Stdout,
		config.Stderr,
	)
	defer SetStdio(nil, nil, nil)

	options := []kong.Option{
		kong.Name(config.Name),
		kong.Description(config.Description),
		kong.Exit(config.Exit),
		kong.Writers(config.Stdout, config.Stderr),
		kong.Vars{
			"version": config.Version,
		},
	}

	var parser *kong.Kong
	parser, err = kong.New(&cli, options...)
	Ck(err)
	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if cli.Verbose {
		os.Setenv("DEBUG", "1")
	}

	cmd := ctx.Command()
	Debug("cmd: %s", cmd)

	// list of commands that talk to the server
	netCmds := []string{"msg"}
	var chat client.ChatClient
	chatConfig := NewChatConfig()
	if util.StringInSlice(strings.Split(cmd, " ")[0], netCmds) {
		if cli.Msg.Model != "" {
			chatConfig.Model = cli.Msg.Model
		}
		if cli.Msg.BaseURL != "" {
			chatConfig.BaseURL = cli.Msg.BaseURL
		}
		if cli.Msg.APIKey != "" {
			chatConfig.APIKey = cli.Msg.APIKey
		}
		chatConfig.Stream = !cli.Msg.NoStream
		chat = config.Client
		if chat == nil {
			chat = openai.NewClient(chatConfig.BaseURL, chatConfig.APIKey)
		}
	}

	switch cmd {
	case "msg", "msg <words>":
		message := strings.Join(cli.Msg.Words, " ")
		if cli.Msg.Test {
			message = TestMessage
		}
		if strings.TrimSpace(message) == "" {
			Fpf(config.Stdout, "Please provide a message to send to the server.\n")
			Fpf(config.Stdout, "Usage: %s 'Your message here'\n", config.Name)
			return
		}
		err = SendMessage(context.Background(), chat, chatConfig, message, config.Stdout)
		if err != nil {
			// failures are reported on stdout and the process still
			// exits normally
			Fpf(config.Stdout, "Error: %v\n", err)
			err = nil
		}
	case "models":
		// list the known model aliases
		models := NewModels().ListModels()
		for _, m := range models {
			Fpf(config.Stdout, "%s\n", m)
		}
	case "tc", "tc <words>":
		// emit the token count of the message on stdout
		err = InitTokenizer()
		Ck(err)
		count, err := TokenCount(strings.Join(cli.Tc.Words, " "))
		Ck(err)
		Fpf(config.Stdout, "%d\n", count)
	case "version":
		// print the version of lmchat
		Fpf(config.Stdout, "%s version %s\n", config.Name, CodeVersion())
	default:
		Fpf(config.Stderr, "Error: unrecognized command: %s\n", cmd)
		rc = 1
		return
	}

	return
}
