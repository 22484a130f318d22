package main

import (
	"github.com/mediaforge/archon/cmd"
)

func main() {
	cmd.Execute()
}
