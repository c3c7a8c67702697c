package main

import "kundli/cmd/kundli-cli/cmd"

func main() {
	cmd.Execute()
}
