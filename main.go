package main

import "github.com/they4kman/pisweep/cmd"

func main() {
	cmd.Execute()
}
