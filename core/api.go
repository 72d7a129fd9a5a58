package core

import (
	. "github.com/stevegt/goadapt"
	"github.com/tiktoken-go/tokenizer"
)

// Version is the lmchat code version.
const Version = "0.1.0"

// CodeVersion returns the version of the lmchat code.
func CodeVersion() string {
	return Version
}

var Tokenizer tokenizer.Codec

// InitTokenizer initializes the tokenizer.
func InitTokenizer() (err error) {
	Tokenizer, err = tokenizer.Get(tokenizer.Cl100kBase)
	Ck(err)
	return
}

// TokenCount returns the number of cl100k_base tokens in text.
func TokenCount(text string) (count int, err error) {
	defer Return(&err)
	var tokens []string
	_, tokens, err = Tokenizer.Encode(text)
	Ck(err)
	count = len(tokens)
	return
}
