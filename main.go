package main

import "github.com/sw33tLie/medimind/cmd"

func main() {
	cmd.Execute()
}
