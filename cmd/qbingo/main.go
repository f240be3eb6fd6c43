package main

import "github.com/mcoot/quizbingo/internal/cli"

func main() {
	cli.Execute()
}
