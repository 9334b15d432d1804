package main

import (
	"github.com/songguessr/songguessr-go/internal/cli"
)

func main() {
	cli.Execute()
}
