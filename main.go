package main

import "spotsolve-be/cmd"

func main() {
	cmd.Execute()
}
