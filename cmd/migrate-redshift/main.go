// Package main provides migrate-redshift, which converts a Redshift script
// with :NAME placeholders into a PySpark notebook.
//
// Usage:
//
//	migrate-redshift <input-file>
package main

import (
	"os"

	"github.com/leapstack-labs/leapmigrate/internal/cli"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/redshift"
)

func main() {
	if err := cli.ExecuteTool("redshift"); err != nil {
		os.Exit(1)
	}
}
