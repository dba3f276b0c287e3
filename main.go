package main

import "lugat-go/cmd"

func main() {
	cmd.Execute()
}
