package main

import (
	"os"

	"github.com/moxi-git/dotfiles/cmd/dotfiles"
	"github.com/moxi-git/dotfiles/pkg/ui/output"
)

func main() {
	rootCmd := dotfiles.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		out := output.New()
		out.Error("Error: %v", err)
		os.Exit(1)
	}
}
