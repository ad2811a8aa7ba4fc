package main

import "fmt"

// Run executes the auth command.
func (c *AuthCmd) Run(deps *Dependencies) error {
	if err := deps.Authorize(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Authorized. Token saved to %s\n", deps.TokenPath)
	return nil
}
