// Package util provides small helpers shared across the decimater packages.
package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
)

// DebugLevel reads the DEBUG_LEVEL environment variable, defaulting to 0.
func DebugLevel() int64 {
	level, _ := strconv.ParseInt(os.Getenv("DEBUG_LEVEL"), 10, 64)
	return level
}

// Assert panics with a colored message if ok() is false and DEBUG_LEVEL >= 1.
// These guard internal invariants (e.g. an edge popped twice without
// progress) that are logic bugs rather than recoverable error conditions.
func Assert(statement string, ok func() bool) {
	if DebugLevel() < 1 {
		return
	}
	if !ok() {
		fmt.Print("\a")
		red := color.New(color.FgRed).SprintFunc()
		panic(red("assertion failed: " + statement))
	}
}
