package main

import "github.com/trxgoblin/minerd/internal/cli"

func main() {
	cli.Execute()
}
