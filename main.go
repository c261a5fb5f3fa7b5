package main

import "optimesheet/cmd"

func main() {
	cmd.Execute()
}
