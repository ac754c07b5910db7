package main

import "github.com/kamusis/patterns-cli/cmd"

func main() {
	cmd.Execute()
}
