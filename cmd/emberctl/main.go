// Package main provides the emberctl CLI entry point.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "emberctl:", err)
		os.Exit(1)
	}
}
