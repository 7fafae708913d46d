package main

import (
	"github.com/shawn-dsz/voxtube/internal/cli"
)

func main() {
	cli.Execute()
}
