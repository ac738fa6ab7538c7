package main

import (
	"github.com/postpilothq/postpilot/cmd"
)

func main() {
	cmd.Execute()
}
