package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/njchilds90/answercheck/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, cmd.ErrRejected) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
