package pagedoc

// CleanResult holds the main content of an HTML page.
type CleanResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// Cleaner removes boilerplate from HTML pages before content extraction.
type Cleaner interface {
	Clean(html string) (*CleanResult, error)
}
