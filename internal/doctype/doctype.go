// Package doctype defines the document-type taxonomy that drives
// template selection, retrieval query terms, and export filenames.
package doctype

import "strings"

// Type is the enumerated legal document type. It is produced once per
// uploaded document and is immutable afterwards.
type Type string

const (
	DivorcePetition Type = "divorce_petition"
	RentalAgreement Type = "rental_agreement"
	General         Type = "general"
)

// FromLabel maps a free-form classifier label to a Type.
//
// The label comes from an LLM, so this is a best-effort keyword match
// over the lowercased text, never an error. Divorce keywords are
// checked before tenancy keywords; a label matching both (for example a
// settlement covering the marital home lease) files as a divorce
// petition. Anything unrecognized degrades to General.
func FromLabel(label string) Type {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "divorce") || strings.Contains(l, "mutual consent"):
		return DivorcePetition
	case strings.Contains(l, "rent") || strings.Contains(l, "lease") || strings.Contains(l, "tenancy"):
		return RentalAgreement
	default:
		return General
	}
}

// DisplayName returns the human-readable name shown to users.
func (t Type) DisplayName() string {
	switch t {
	case DivorcePetition:
		return "Divorce Petition"
	case RentalAgreement:
		return "Rental Agreement"
	default:
		return "Legal Document"
	}
}

// ExportFilename returns the fixed .docx filename for drafts of this type.
func (t Type) ExportFilename() string {
	switch t {
	case DivorcePetition:
		return "mutual_consent_divorce_petition.docx"
	case RentalAgreement:
		return "rental_agreement.docx"
	default:
		return "legal_document.docx"
	}
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	switch t {
	case DivorcePetition, RentalAgreement, General:
		return true
	default:
		return false
	}
}
