package main

import (
	"fmt"

	"github.com/fwojciec/pagedoc"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	urls, err := loadURLs(deps.Ctx, deps.Sitemaps, c.URLSource)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedoc.ErrorMessage(err))
		return err
	}

	for i, u := range urls {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		if err := c.preview(deps, u); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %v\n", u, err)
			return err
		}
	}
	return nil
}

func (c *PreviewCmd) preview(deps *Dependencies, u string) error {
	if c.Format == "markdown" {
		if deps.Converter == nil {
			return pagedoc.Errorf(pagedoc.EINTERNAL, "markdown conversion is not configured")
		}
		html, err := deps.Publisher.Page(deps.Ctx, u)
		if err != nil {
			return err
		}
		md, err := deps.Converter.Convert(html, u)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "== %s (%s)\n%s\n", u, pagedoc.TitleFromURL(u), md)
		return nil
	}

	elements, err := deps.Publisher.Elements(deps.Ctx, u)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "== %s (%s, %d elements)\n", u, pagedoc.TitleFromURL(u), len(elements))

	if c.Format != "ops" {
		if len(elements) > 0 {
			fmt.Fprintln(deps.Stdout, pagedoc.FormatElements(elements))
		}
		return nil
	}
	for _, op := range pagedoc.BuildRequests(elements) {
		fmt.Fprintln(deps.Stdout, formatOperation(op))
	}
	return nil
}

func formatOperation(op pagedoc.EditOperation) string {
	switch op := op.(type) {
	case pagedoc.InsertText:
		return fmt.Sprintf("insert   @%d %q", op.Index, op.Text)
	case pagedoc.ApplyHeadingStyle:
		return fmt.Sprintf("heading%d [%d,%d)", op.Level, op.Range.Start, op.Range.End)
	case pagedoc.ApplyBulletStyle:
		return fmt.Sprintf("bullet   [%d,%d)", op.Range.Start, op.Range.End)
	default:
		return fmt.Sprintf("%T", op)
	}
}
