// Command fairdiv divides a one-dimensional resource among agents with
// heterogeneous valuations, locally or through a remote solver, from the
// command line or as an HTTP service.
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
