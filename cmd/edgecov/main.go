// Command edgecov is the entrypoint of the edgecov CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/edgecov/cmd"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "⚠️ ", stopErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
