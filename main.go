package main

import (
	"github.com/noamichael/fitspreview/cmd"
)

func main() {
	cmd.Execute()
}
