package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd"
	_ "go.uber.org/automaxprocs"
)

func main() {
	rand.New(rand.NewSource(time.Now().UnixNano()))

	command := cmd.NewDefaultMiniMaxCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
