package main

import "github.com/pfrederiksen/events-refresh/internal/cli"

func main() {
	cli.Execute()
}
