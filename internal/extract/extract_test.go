package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_BasicSections(t *testing.T) {
	lines := []string{"Abstract", "foo", "Introduction", "bar", "Conclusion", "baz"}

	doc, err := Split(lines)
	require.NoError(t, err)

	assert.Equal(t, []string{"abstract", "introduction", "conclusion"}, doc.Keys())
	assert.Equal(t, []string{"Abstract", "foo"}, doc.Section("abstract"))
	assert.Equal(t, []string{"Introduction", "bar"}, doc.Section("introduction"))
	assert.Equal(t, []string{"Conclusion", "baz"}, doc.Section("conclusion"))
}

func TestSplit_DuplicateHeadingsKept(t *testing.T) {
	lines := []string{
		"Summary", "first block",
		"Methodology", "how it works",
		"Summary", "second block",
	}

	doc, err := Split(lines)
	require.NoError(t, err)

	assert.Equal(t, []string{"summary", "methodology", "summary_0"}, doc.Keys())
	assert.NotEmpty(t, doc.Section("summary"))
	assert.NotEmpty(t, doc.Section("summary_0"))
	assert.Equal(t, []string{"Summary", "second block"}, doc.Section("summary_0"))
}

func TestSplit_NumericOutlinePrefix(t *testing.T) {
	lines := []string{"3.2 Methodology", "details", "4. Evaluation", "numbers"}

	doc, err := Split(lines)
	require.NoError(t, err)

	assert.Equal(t, []string{"methodology", "experiment"}, doc.Keys())
	assert.Equal(t, []string{"3.2 Methodology", "details"}, doc.Section("methodology"))
}

func TestSplit_AliasMatching(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"Approach", "methodology"},
		{"Prior Work", "related_work"},
		{"Empirical Results", "results"},
		{"Bibliography", "references"},
		{"Acknowledgements", "acknowledgments"},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			doc, err := Split([]string{tt.heading, "body"})
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, doc.Keys())
		})
	}
}

func TestSplit_NoHeadingsFallsBackToMain(t *testing.T) {
	lines := []string{"just some text", "with no headings at all"}

	doc, err := Split(lines)
	require.NoError(t, err)

	assert.Equal(t, []string{MainKey}, doc.Keys())
	assert.Equal(t, lines, doc.Section(MainKey))
	assert.False(t, doc.HasReferences())
	assert.Equal(t, "just some text\nwith no headings at all", doc.MainContext())
}

func TestSplit_EmptyDocument(t *testing.T) {
	for _, lines := range [][]string{nil, {}, {"", "   ", "\t"}} {
		_, err := Split(lines)
		var extErr *Error
		require.ErrorAs(t, err, &extErr)
	}
}

func TestMainContext_StopsBeforeReferences(t *testing.T) {
	lines := []string{
		"Abstract", "a",
		"Methodology", "m",
		"Conclusion", "c",
		"References", "[1] someone 2021",
	}

	doc, err := Split(lines)
	require.NoError(t, err)

	assert.True(t, doc.HasReferences())
	main := doc.MainContext()
	assert.Contains(t, main, "Methodology")
	assert.Contains(t, main, "Conclusion")
	assert.NotContains(t, main, "[1] someone 2021")
}

func TestMainContext_NoReferencesUsesWholeDocument(t *testing.T) {
	lines := []string{"Abstract", "a", "Discussion", "d", "Appendix", "x"}

	doc, err := Split(lines)
	require.NoError(t, err)

	main := doc.MainContext()
	assert.Contains(t, main, "Appendix")
	assert.Contains(t, main, "x")
}

func TestCleanHeading(t *testing.T) {
	assert.Equal(t, "methodology", cleanHeading("3.2   Methodology"))
	assert.Equal(t, "related work", cleanHeading("2) Related  Work"))
	assert.Equal(t, "", cleanHeading("1234 5678"))
}
