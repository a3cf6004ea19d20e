// Package main provides the leapmigrate CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapmigrate/internal/cli"
	// Register the built-in dialects via init()
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/hive"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/redshift"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
