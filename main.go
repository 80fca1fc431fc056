package main

import (
	"github.com/door43-tools/tanotion/cmd"
)

func main() {
	cmd.Execute()
}
