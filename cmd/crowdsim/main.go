// Command crowdsim is a thin CLI driver over the engine: it does nothing
// the core doesn't already expose — load-module, initialize-simulation, a
// bounded update loop, finish — the way a teacher's own cmd/ binary is a
// demo harness rather than a piece of the library surface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is not an error: flags and OS environment still work.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
