package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/qline/internal/app"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: qline <path>")
		os.Exit(1)
	}
	if err := app.New(args[0]).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "qline:", err)
		os.Exit(1)
	}
}
