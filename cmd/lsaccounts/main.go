package main

import "github.com/mcoot/lobby-accounts/internal/cli"

func main() {
	cli.Execute()
}
