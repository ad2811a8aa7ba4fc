package main

import "fmt"

// Run executes the relay command. It blocks until the context is canceled.
func (c *RelayCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Relay form at http://%s%s\n", displayAddr(c.Addr), c.Prefix)
	if err := deps.Serve(deps.Ctx, c.Addr, deps.Relay, deps.Logger); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
