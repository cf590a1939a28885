// Package main is the entry point for the wz CLI tool.
package main

import (
	"github.com/portalworks/wz/internal/cmd"
)

func main() {
	cmd.Execute()
}
