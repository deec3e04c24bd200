package main

import "github.com/klind25/teller/cmd"

func main() {
	cmd.Execute()
}
