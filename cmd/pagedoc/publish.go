package main

import (
	"fmt"

	"github.com/fwojciec/pagedoc"
	"github.com/fwojciec/pagedoc/publish"
)

// Run executes the publish command.
func (c *PublishCmd) Run(deps *Dependencies) error {
	urls, err := loadURLs(deps.Ctx, deps.Sitemaps, c.URLSource)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedoc.ErrorMessage(err))
		return err
	}

	deps.Publisher.KeepGoing = c.KeepGoing
	deps.Publisher.SkipUnchanged = c.SkipUnchanged

	progress := func(event publish.ProgressEvent) {
		switch event.Type {
		case publish.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Publishing %d URLs\n", event.Total)
		case publish.ProgressPublished:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n         %s (%d elements)\n",
				event.Completed, event.Total, event.URL, event.Publication.DocumentURL, event.Publication.Elements)
		case publish.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s unchanged\n         %s\n",
				event.Completed, event.Total, event.URL, event.Publication.DocumentURL)
		case publish.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %v\n", event.Completed, event.Total, event.URL, event.Error)
		}
	}

	result, err := deps.Publisher.PublishAll(deps.Ctx, urls, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Published %d, skipped %d, failed %d\n", result.Published, result.Skipped, result.Failed)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", result.Failed, len(urls))
	}
	return nil
}
