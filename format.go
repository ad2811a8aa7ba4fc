package pagedoc

import "strings"

// FormatElements renders content elements as plain text in document order.
// Headings are prefixed with '#' per level and list items with "- ".
// Elements are separated by newlines.
func FormatElements(elements []ContentElement) string {
	if len(elements) == 0 {
		return ""
	}

	lines := make([]string, 0, len(elements))
	for _, el := range elements {
		if level, ok := el.Kind.HeadingLevel(); ok {
			lines = append(lines, strings.Repeat("#", level)+" "+el.Text)
			continue
		}
		if el.Kind.IsListItem() {
			lines = append(lines, "- "+el.Text)
			continue
		}
		lines = append(lines, el.Text)
	}

	return strings.Join(lines, "\n")
}
