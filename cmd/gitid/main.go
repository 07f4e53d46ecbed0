// Command gitid manages multiple git identities.
package main

import (
	"fmt"
	"os"

	"github.com/gitid-dev/gitid/internal/cmd"
	"github.com/gitid-dev/gitid/internal/style"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", style.Error.Render("Error:"), err)
		os.Exit(1)
	}
}
