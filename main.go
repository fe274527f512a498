package main

import "github.com/licethq/licet/cmd"

func main() {
	cmd.Execute()
}
