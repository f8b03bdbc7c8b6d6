package main

import (
	"fmt"

	"github.com/fwojciec/stagenote"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return stagenote.Errorf(stagenote.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Performances.DeletePerformance(deps.Ctx, c.ID); err != nil {
		if stagenote.ErrorCode(err) == stagenote.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: performance %q not found. Use 'stagenote list' to see stored records.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", stagenote.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted performance %q\n", c.ID)
	return nil
}
