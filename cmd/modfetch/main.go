// Command modfetch downloads mod files and archives and checks GitHub for
// mod updates.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
