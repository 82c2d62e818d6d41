// Command jsh is an interactive shell with job control: commands run
// as child processes in their own process groups and can be moved
// between foreground, background, and stopped states with fg, bg,
// jobs, and quit.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}
