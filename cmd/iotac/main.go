package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.err)
			return ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		return exitInternal
	}
	return exitOK
}
