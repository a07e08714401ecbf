package main

import (
	"github.com/wesleyorama2/relay/internal/cli"
)

func main() {
	cli.Execute()
}
