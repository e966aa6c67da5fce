package main

import "github.com/barsava/ethfetch/cmd"

func main() {
	cmd.Execute()
}
