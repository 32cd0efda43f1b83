package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-modalica/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	if ctx.Debug {
		fmt.Println(string(version.JSON(execName())))
		return nil
	}
	fmt.Println(execName(), version.Version())
	return nil
}
