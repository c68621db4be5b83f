package main

import "go-kanban/app/cmd"

func main() {
	cmd.Execute()
}
