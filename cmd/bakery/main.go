package main

import "github.com/andrescamacho/bakerysim-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
