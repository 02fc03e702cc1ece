// The main package for the firecrawl-integration executable.
package main

import (
	"github.com/nervousmark/firecrawl-integration/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
