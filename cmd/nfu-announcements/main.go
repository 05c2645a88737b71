package main

import "github.com/nfu-tools/nfu-announcements/internal/cli"

func main() {
	cli.Execute()
}
