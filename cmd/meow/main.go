package main

import "github.com/oshokin/meow/cmd/meow/cmd"

func main() {
	cmd.Execute()
}
