package main

import "github.com/pfrederiksen/plk-schedule/internal/cli"

func main() {
	cli.Execute()
}
