package main

import (
	"github.com/riddles-game/server/internal/cli"
)

func main() {
	cli.Execute()
}
