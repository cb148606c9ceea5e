package main

import "github.com/grid-automata/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
