package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ArgumentCountError is returned when a command gets the wrong number of
// positional arguments. The caller prints the command usage.
type ArgumentCountError struct {
	Want int
	Got  int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("accepts %d arg(s), received %d", e.Want, e.Got)
}

// exactArgs is cobra.ExactArgs returning an ArgumentCountError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return &ArgumentCountError{Want: n, Got: len(args)}
		}
		return nil
	}
}
