package main

import "github.com/ryclarke/stash-mcp/cmd"

func main() {
	cmd.Execute()
}
