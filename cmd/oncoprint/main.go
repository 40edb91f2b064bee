// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/mskilab-org/gOS-sub001/cmd/oncoprint/cli"
	"github.com/mskilab-org/gOS-sub001/cmd/oncoprint/commands"
)

func main() {
	err := commands.Root(os.Stdout, os.Stderr).Execute(os.Args[1:])
	code, printMessage := cli.ExitCode(err)
	if printMessage {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(code)
}
