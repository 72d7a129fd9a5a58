package main

import (
	"os"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/lmchat/core"
)

// main simply calls the core package's Cli() function
func main() {
	config := core.NewCliConfig()
	rc, err := core.Cli(os.Args[1:], config)
	Ck(err)
	os.Exit(rc)
}
