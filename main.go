package main

import "github.com/chazu/hypershape/cmd"

func main() {
	cmd.Execute()
}
