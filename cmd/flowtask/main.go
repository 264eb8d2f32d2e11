package main

import (
	"flowtask/cmd/flowtask/commands"
)

func main() {
	commands.Execute()
}
