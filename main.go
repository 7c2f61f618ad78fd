package main

import "github.com/RyanBlaney/hlsget/cmd"

func main() {
	cmd.Execute()
}
