// Package analysis turns raw model output into the structured document
// analysis record.
//
// Two parse paths share one result type. The structured path asks the
// model for schema-constrained JSON. The fallback path scrapes the six
// section labels the document prompt demands verbatim; it is
// contract-coupled to prompt.DocumentPrompt and deliberately forgiving:
// a missing section yields a sentinel string, never an error.
package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Sections lists the six labels of the document analysis, in the order
// the prompt declares them. The fallback parser matches these verbatim.
var Sections = []string{
	"Summary",
	"Discrepancies",
	"Incorrect Clauses",
	"Corrected Clauses",
	"Missing Clauses",
	"Draft",
}

// Result is the parsed document analysis. Every field is free text;
// fields the model omitted hold the NotFound sentinel for their label.
type Result struct {
	Summary          string `json:"summary"`
	Discrepancies    string `json:"discrepancies"`
	IncorrectClauses string `json:"incorrect_clauses"`
	CorrectedClauses string `json:"corrected_clauses"`
	MissingClauses   string `json:"missing_clauses"`
	Draft            string `json:"draft"`
}

// Section returns the field holding the named section, or the empty
// string for an unknown label.
func (r Result) Section(name string) string {
	switch name {
	case "Summary":
		return r.Summary
	case "Discrepancies":
		return r.Discrepancies
	case "Incorrect Clauses":
		return r.IncorrectClauses
	case "Corrected Clauses":
		return r.CorrectedClauses
	case "Missing Clauses":
		return r.MissingClauses
	case "Draft":
		return r.Draft
	}
	return ""
}

// NotFound returns the sentinel value for a section absent from the
// model output.
func NotFound(section string) string {
	return fmt.Sprintf("%s section not found in the response.", section)
}

// ExtractSection returns the text of the named section in raw.
//
// It locates the first occurrence of "name:", takes everything after
// it, and truncates at the earliest occurrence of any other known
// label in that remainder. A model that repeats labels out of declared
// order still truncates at the first subsequent label found. When the
// label never appears the sentinel is returned; this function never
// fails and is idempotent for a given input.
func ExtractSection(raw, name string) string {
	marker := name + ":"
	idx := strings.Index(raw, marker)
	if idx < 0 {
		return NotFound(name)
	}

	rest := strings.TrimSpace(raw[idx+len(marker):])
	cut := len(rest)
	for _, other := range Sections {
		if other == name {
			continue
		}
		if j := strings.Index(rest, other+":"); j >= 0 && j < cut {
			cut = j
		}
	}
	return strings.TrimSpace(rest[:cut])
}

// Parse scrapes all six sections from free-text model output. Markdown
// bold markers are stripped first; the model tends to decorate labels
// with them despite the prompt.
func Parse(raw string) Result {
	clean := strings.TrimSpace(strings.ReplaceAll(raw, "**", ""))
	return Result{
		Summary:          ExtractSection(clean, "Summary"),
		Discrepancies:    ExtractSection(clean, "Discrepancies"),
		IncorrectClauses: ExtractSection(clean, "Incorrect Clauses"),
		CorrectedClauses: ExtractSection(clean, "Corrected Clauses"),
		MissingClauses:   ExtractSection(clean, "Missing Clauses"),
		Draft:            ExtractSection(clean, "Draft"),
	}
}

// ParseJSON decodes schema-constrained model output. The caller falls
// back to Parse when this fails; structured output is an optimization,
// not a guarantee.
func ParseJSON(raw string) (Result, error) {
	var r Result
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Result{}, fmt.Errorf("decoding analysis JSON: %w", err)
	}
	r.fillMissing()
	return r, nil
}

// fillMissing replaces empty fields with their sentinel so both parse
// paths present the same shape to callers.
func (r *Result) fillMissing() {
	fields := []struct {
		value   *string
		section string
	}{
		{&r.Summary, "Summary"},
		{&r.Discrepancies, "Discrepancies"},
		{&r.IncorrectClauses, "Incorrect Clauses"},
		{&r.CorrectedClauses, "Corrected Clauses"},
		{&r.MissingClauses, "Missing Clauses"},
		{&r.Draft, "Draft"},
	}
	for _, f := range fields {
		if strings.TrimSpace(*f.value) == "" {
			*f.value = NotFound(f.section)
		}
	}
}

// Schema returns the response schema for the structured output path.
func Schema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":           {Type: genai.TypeString},
			"discrepancies":     {Type: genai.TypeString},
			"incorrect_clauses": {Type: genai.TypeString},
			"corrected_clauses": {Type: genai.TypeString},
			"missing_clauses":   {Type: genai.TypeString},
			"draft":             {Type: genai.TypeString},
		},
		Required: []string{
			"summary", "discrepancies", "incorrect_clauses",
			"corrected_clauses", "missing_clauses", "draft",
		},
	}
}
