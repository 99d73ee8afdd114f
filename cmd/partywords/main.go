package main

import "github.com/pjessen/partywords/internal/cli"

func main() {
	cli.Execute()
}
