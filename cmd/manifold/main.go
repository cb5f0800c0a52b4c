// Package main provides the manifold CLI, a thin shell over the
// manager middleware for inspecting and exercising configured asset
// managers.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mediaforge/manifold/pkg/types"
)

// Exit codes: user errors (bad input, unknown references) exit 1,
// system errors (configuration, database) exit 2.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, types.ErrConfiguration) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}
