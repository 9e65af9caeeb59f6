package main

import "github.com/naka-gawa/self-reposcope/cmd"

func main() {
	cmd.Execute()
}
