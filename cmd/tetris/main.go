package main

import "github.com/plus3/tetris/internal/cli"

func main() {
	cli.Execute()
}
