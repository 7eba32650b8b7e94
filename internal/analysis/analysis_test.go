package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSection(t *testing.T) {
	raw := "Summary: A\nDiscrepancies: B\nDraft: C"

	tests := []struct {
		name    string
		section string
		want    string
	}{
		{"first section", "Summary", "A"},
		{"middle section", "Discrepancies", "B"},
		{"last section", "Draft", "C"},
		{"absent section", "Missing Clauses", "Missing Clauses section not found in the response."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSection(raw, tt.section))
		})
	}
}

func TestExtractSectionOutOfOrder(t *testing.T) {
	// Labels out of declared order still truncate at the first
	// subsequent label found.
	raw := "Draft: the draft body\nSummary: short summary"
	assert.Equal(t, "the draft body", ExtractSection(raw, "Draft"))
	assert.Equal(t, "short summary", ExtractSection(raw, "Summary"))
}

func TestExtractSectionMultiline(t *testing.T) {
	raw := "Summary: line one\nline two\n\nDiscrepancies: none"
	assert.Equal(t, "line one\nline two", ExtractSection(raw, "Summary"))
}

func TestExtractSectionIdempotent(t *testing.T) {
	raw := "Summary: stable text\nDraft: body"
	first := ExtractSection(raw, "Summary")
	assert.Equal(t, first, ExtractSection(raw, "Summary"))
}

func TestNotFoundSentinel(t *testing.T) {
	assert.Equal(t, "Draft section not found in the response.", NotFound("Draft"))
}

func TestParse(t *testing.T) {
	raw := `Summary: The agreement covers a flat in Pune.

Discrepancies: - stamp duty clause missing

Incorrect Clauses: Clause 4 cites a repealed act.

Corrected Clauses: Clause 4 should cite the current act.

Missing Clauses: Lock-in period.

Draft: RENTAL AGREEMENT
This agreement is made...`

	r := Parse(raw)
	assert.Equal(t, "The agreement covers a flat in Pune.", r.Summary)
	assert.Equal(t, "- stamp duty clause missing", r.Discrepancies)
	assert.Equal(t, "Clause 4 cites a repealed act.", r.IncorrectClauses)
	assert.Equal(t, "Clause 4 should cite the current act.", r.CorrectedClauses)
	assert.Equal(t, "Lock-in period.", r.MissingClauses)
	assert.Equal(t, "RENTAL AGREEMENT\nThis agreement is made...", r.Draft)
}

func TestParseStripsBoldMarkers(t *testing.T) {
	raw := "**Summary:** decorated summary\n**Draft:** decorated draft"
	r := Parse(raw)
	assert.Equal(t, "decorated summary", r.Summary)
	assert.Equal(t, "decorated draft", r.Draft)
}

func TestParseAllMissing(t *testing.T) {
	r := Parse("the model rambled without any labels")
	for _, section := range Sections {
		assert.Equal(t, NotFound(section), r.Section(section))
	}
}

func TestParseJSON(t *testing.T) {
	raw := `{"summary":"S","discrepancies":"D","incorrect_clauses":"I","corrected_clauses":"C","missing_clauses":"M","draft":"DR"}`
	r, err := ParseJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "S", r.Summary)
	assert.Equal(t, "DR", r.Draft)
}

func TestParseJSONFillsMissing(t *testing.T) {
	r, err := ParseJSON(`{"summary":"only the summary"}`)
	require.NoError(t, err)
	assert.Equal(t, "only the summary", r.Summary)
	assert.Equal(t, NotFound("Draft"), r.Draft)
	assert.Equal(t, NotFound("Missing Clauses"), r.MissingClauses)
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON("Summary: not json at all")
	assert.Error(t, err)
}

func TestSchemaCoversAllSections(t *testing.T) {
	s := Schema()
	require.NotNil(t, s)
	assert.Len(t, s.Properties, len(Sections))
	assert.Len(t, s.Required, len(Sections))
}

func TestResultSection(t *testing.T) {
	r := Result{Summary: "s", Draft: "d"}
	assert.Equal(t, "s", r.Section("Summary"))
	assert.Equal(t, "d", r.Section("Draft"))
	assert.Equal(t, "", r.Section("No Such Label"))
}
