package pagedoc_test

import (
	"testing"

	"github.com/fwojciec/pagedoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequests(t *testing.T) {
	t.Parallel()

	t.Run("heading then paragraph", func(t *testing.T) {
		t.Parallel()

		ops := pagedoc.BuildRequests([]pagedoc.ContentElement{
			{Kind: pagedoc.KindHeading1, Text: "Title"},
			{Kind: pagedoc.KindParagraph, Text: "Hello"},
		})

		require.Len(t, ops, 3)
		assert.Equal(t, pagedoc.InsertText{Index: 1, Text: "Title\n"}, ops[0])
		assert.Equal(t, pagedoc.ApplyHeadingStyle{Level: 1, Range: pagedoc.Range{Start: 1, End: 6}}, ops[1])
		assert.Equal(t, pagedoc.InsertText{Index: 1, Text: "Hello\n"}, ops[2])
	})

	t.Run("list items alternate insert and bullet", func(t *testing.T) {
		t.Parallel()

		ops := pagedoc.BuildRequests([]pagedoc.ContentElement{
			{Kind: pagedoc.KindListItem, Text: "A"},
			{Kind: pagedoc.KindListItem, Text: "B"},
		})

		require.Len(t, ops, 4)
		assert.Equal(t, pagedoc.InsertText{Index: 1, Text: "A\n"}, ops[0])
		assert.Equal(t, pagedoc.ApplyBulletStyle{Range: pagedoc.Range{Start: 1, End: 2}}, ops[1])
		assert.Equal(t, pagedoc.InsertText{Index: 1, Text: "B\n"}, ops[2])
		assert.Equal(t, pagedoc.ApplyBulletStyle{Range: pagedoc.Range{Start: 1, End: 2}}, ops[3])
	})

	t.Run("maps every heading level", func(t *testing.T) {
		t.Parallel()

		kinds := []pagedoc.ElementKind{
			pagedoc.KindHeading1, pagedoc.KindHeading2, pagedoc.KindHeading3, pagedoc.KindHeading4,
		}
		for i, kind := range kinds {
			ops := pagedoc.BuildRequests([]pagedoc.ContentElement{{Kind: kind, Text: "Heading"}})
			require.Len(t, ops, 2)
			style, ok := ops[1].(pagedoc.ApplyHeadingStyle)
			require.True(t, ok)
			assert.Equal(t, i+1, style.Level)
			assert.Equal(t, pagedoc.Range{Start: 1, End: 8}, style.Range)
		}
	})

	t.Run("returns empty slice for no elements", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, pagedoc.BuildRequests(nil))
	})

	t.Run("counts ranges in UTF-16 code units", func(t *testing.T) {
		t.Parallel()

		// "é" is one code unit, the emoji is a surrogate pair.
		ops := pagedoc.BuildRequests([]pagedoc.ContentElement{
			{Kind: pagedoc.KindHeading2, Text: "café 📄"},
		})

		require.Len(t, ops, 2)
		assert.Equal(t, pagedoc.Range{Start: 1, End: 8}, ops[1].(pagedoc.ApplyHeadingStyle).Range)
	})

	t.Run("one insert per element plus one style per heading or list item", func(t *testing.T) {
		t.Parallel()

		elements := []pagedoc.ContentElement{
			{Kind: pagedoc.KindParagraph, Text: "intro"},
			{Kind: pagedoc.KindHeading2, Text: "Section"},
			{Kind: pagedoc.KindListItem, Text: "one"},
			{Kind: pagedoc.KindParagraph, Text: "middle"},
			{Kind: pagedoc.KindListItem, Text: "two"},
			{Kind: pagedoc.KindHeading4, Text: "Small"},
			{Kind: pagedoc.KindParagraph, Text: "outro"},
		}

		ops := pagedoc.BuildRequests(elements)

		styled := 0
		for _, el := range elements {
			if _, ok := el.Kind.HeadingLevel(); ok || el.Kind.IsListItem() {
				styled++
			}
		}
		assert.Len(t, ops, len(elements)+styled)

		var inserted []string
		for _, op := range ops {
			if ins, ok := op.(pagedoc.InsertText); ok {
				inserted = append(inserted, ins.Text)
			}
		}
		var want []string
		for _, el := range elements {
			want = append(want, el.Text+"\n")
		}
		assert.Equal(t, want, inserted)
	})
}

func TestElementKind_HeadingLevel(t *testing.T) {
	t.Parallel()

	level, ok := pagedoc.KindHeading3.HeadingLevel()
	assert.True(t, ok)
	assert.Equal(t, 3, level)

	_, ok = pagedoc.KindParagraph.HeadingLevel()
	assert.False(t, ok)

	_, ok = pagedoc.KindListItem.HeadingLevel()
	assert.False(t, ok)
}

func TestTextLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, pagedoc.TextLength("Hello"))
	assert.Equal(t, 0, pagedoc.TextLength(""))
	assert.Equal(t, 2, pagedoc.TextLength("📄"))
}
