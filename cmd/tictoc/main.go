package main

import "github.com/all-dot-files/tictoc/internal/cli"

func main() {
	cli.Execute()
}
