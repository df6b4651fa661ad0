// Command quora manages and browses a forum database.
package main

import "github.com/marshallshelly/pebble-quora/cmd/quora/commands"

func main() {
	commands.Execute()
}
