// Command braillestl runs the validate -> layout -> extract -> csg ->
// serialize pipeline from a YAML job file, writing one binary STL per
// requested plate (spec.md §2's "one pure function usable over any
// transport" given a local, file-based transport).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
