// Package main provides migrate-hive, which converts a HiveQL script with
// ${NAME} placeholders into a Scala Spark notebook.
//
// Usage:
//
//	migrate-hive <input-file>
package main

import (
	"os"

	"github.com/leapstack-labs/leapmigrate/internal/cli"
	_ "github.com/leapstack-labs/leapmigrate/pkg/dialects/hive"
)

func main() {
	if err := cli.ExecuteTool("hive"); err != nil {
		os.Exit(1)
	}
}
