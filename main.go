package main

import "github.com/affscope/affscope/cmd"

func main() {
	cmd.Execute()
}
