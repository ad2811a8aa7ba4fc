package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/pagedoc"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := pagedoc.PublicationFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	pubs, err := deps.Publications.FindPublications(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if pubs == nil {
			pubs = []*pagedoc.Publication{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pubs)
	}

	if len(pubs) == 0 {
		fmt.Fprintln(deps.Stdout, "No publications found. Use 'pagedoc publish' to create one.")
		return nil
	}

	for _, p := range pubs {
		fmt.Fprintf(deps.Stdout, "%s  %s\n  %s\n  %s (%d elements)\n",
			p.PublishedAt.Local().Format(time.DateTime), p.Title, p.SourceURL, p.DocumentURL, p.Elements)
	}
	return nil
}
