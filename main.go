package main

import "github.com/notargets/piston1d/cmd"

func main() {
	cmd.Execute()
}
