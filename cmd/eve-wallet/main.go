package main

import (
	"github.com/andrescamacho/eve-wallet-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
