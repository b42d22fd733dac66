// Package main provides the nubepurge CLI for removing unused utility classes.
package main

import (
	"fmt"
	"os"

	"github.com/nube-system/nubepurge"
	"github.com/nube-system/nubepurge/internal/purge"
)

func main() {
	if err := execute(); err != nil {
		purge.NewReporter(os.Stderr, k.Bool("color")).PrintError(err)
		os.Exit(1)
	}
}

// execute runs the root command, turning a panic into an error
func execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", nubepurge.ErrUnexpected, r)
		}
	}()
	return rootCmd.Execute()
}
