package main

import "presale-core/cmd/presale-cli/cmd"

func main() {
	cmd.Execute()
}
