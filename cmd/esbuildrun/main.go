package main

import "esbuildrun/internal/cli"

func main() {
	cli.Execute()
}
