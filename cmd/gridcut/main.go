package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	// An interrupted run already printed nothing worth repeating.
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "gridcut:", err)
	}
	os.Exit(1)
}
