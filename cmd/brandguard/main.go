// CLI entry point for BrandGuard-Intelligence.
package main

import (
	"os"

	"github.com/turtacn/BrandGuard-Intelligence/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
