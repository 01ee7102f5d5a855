package main

import "github.com/sreehariX/sarcv2/internal/commands"

func main() {
	commands.Execute()
}
