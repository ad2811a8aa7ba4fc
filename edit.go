package pagedoc

import "unicode/utf16"

// DocumentStartIndex is the index of the first character in a document body.
// Every insertion targets this anchor; the document service shifts existing
// content forward, so the final visual order is the reverse of emission order.
const DocumentStartIndex = 1

// Range is a half-open range of document indexes, counted in UTF-16 code units.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// EditOperation is one instruction for the document service.
// The set of operations is closed: InsertText, ApplyHeadingStyle and
// ApplyBulletStyle.
type EditOperation interface {
	editOperation()
}

// InsertText inserts Text at Index.
type InsertText struct {
	Index int
	Text  string
}

// ApplyHeadingStyle applies the named heading style of the given level to
// the paragraphs overlapping Range.
type ApplyHeadingStyle struct {
	Level int
	Range Range
}

// ApplyBulletStyle turns the paragraphs overlapping Range into bullets.
type ApplyBulletStyle struct {
	Range Range
}

func (InsertText) editOperation()        {}
func (ApplyHeadingStyle) editOperation() {}
func (ApplyBulletStyle) editOperation()  {}

// BuildRequests converts content elements into document edit operations.
//
// Each element yields an InsertText at DocumentStartIndex carrying the text
// and a trailing newline, followed by a heading style for headings or a
// bullet style for list items. Style ranges cover only the text just
// inserted. Operations keep the order of their source elements.
func BuildRequests(elements []ContentElement) []EditOperation {
	ops := make([]EditOperation, 0, len(elements)*2)
	for _, el := range elements {
		ops = append(ops, InsertText{
			Index: DocumentStartIndex,
			Text:  el.Text + "\n",
		})

		r := Range{
			Start: DocumentStartIndex,
			End:   DocumentStartIndex + TextLength(el.Text),
		}
		if level, ok := el.Kind.HeadingLevel(); ok {
			ops = append(ops, ApplyHeadingStyle{Level: level, Range: r})
		} else if el.Kind.IsListItem() {
			ops = append(ops, ApplyBulletStyle{Range: r})
		}
	}
	return ops
}

// TextLength returns the length of s in UTF-16 code units, the unit used
// for document indexes.
func TextLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}
