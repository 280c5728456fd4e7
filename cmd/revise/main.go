package main

import "github.com/nplqhub/revise/cmd"

func main() {
	cmd.Execute()
}
