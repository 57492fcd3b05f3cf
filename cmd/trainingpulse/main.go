// Command trainingpulse runs the bulk operations API for the course
// production workflow and its maintenance tasks.
//
// Usage:
//
//	trainingpulse serve
//	trainingpulse migrate [up|down|status]
//	trainingpulse sweep-previews
//	trainingpulse user add --email <email> --role manager
//	trainingpulse token --email <email>
//	trainingpulse version
//
// Configuration comes from CONFIG_PATH (or --config) plus environment
// variables. Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
