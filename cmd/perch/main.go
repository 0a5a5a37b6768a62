package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/perchapp/perch"
)

func run(args []string) error {
	return perch.GetApp().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
