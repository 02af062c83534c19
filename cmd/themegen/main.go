package main

import "themegen/internal/cli"

func main() {
	cli.Execute()
}
