package pagedoc

// Converter renders page HTML as Markdown. Preview uses it to show the
// whole page next to the elements that would be published.
type Converter interface {
	// Convert returns html as Markdown. Relative links and images are
	// resolved against pageURL when it is set.
	Convert(html, pageURL string) (string, error)
}
