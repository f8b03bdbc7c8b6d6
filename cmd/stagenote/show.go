package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/stagenote"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Performances.FindPerformanceByID(deps.Ctx, c.ID)
	if err != nil {
		if stagenote.ErrorCode(err) == stagenote.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: performance %q not found. Use 'stagenote list' to see stored records.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", stagenote.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
