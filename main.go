package main

import (
	"fmt"
	"os"

	"github.com/abhisek/bibletrack/cmd"
	"github.com/abhisek/bibletrack/internal/ui/theme"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, theme.Failed.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
