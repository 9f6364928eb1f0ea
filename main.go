package main

import (
	"os"

	"github.com/perlcheck/perlcheck/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
