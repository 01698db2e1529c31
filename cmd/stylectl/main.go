// Package main provides the stylectl CLI tool.
//
// Usage:
//
//	stylectl [--backend file|badger|sqlite] [--data DIR] [--codec sld|yaml] <command> [args]
//
// Commands:
//
//	has  <type>         - report whether a style is stored
//	get  <type>         - print a style
//	put  <type> <file>  - store a style from a file
//	rm   <type>         - remove a style
//	ls                  - list styled types
//	seed <dir>          - store default styles from a directory without overwriting
package main

import (
	"fmt"
	"os"

	"github.com/garunski/stylestore/cmd/stylectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
