package doctype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Type
	}{
		{"divorce petition", "Divorce Petition", DivorcePetition},
		{"mutual consent phrase", "mutual consent divorce", DivorcePetition},
		{"rental agreement", "rental agreement", RentalAgreement},
		{"lease", "Lease Deed", RentalAgreement},
		{"tenancy", "Tenancy Agreement", RentalAgreement},
		{"will", "Last Will and Testament", General},
		{"other", "other", General},
		{"empty", "", General},
		{"divorce wins over lease", "divorce settlement covering house lease", DivorcePetition},
		{"case insensitive", "DIVORCE PETITION", DivorcePetition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromLabel(tt.label))
		})
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "mutual_consent_divorce_petition.docx", DivorcePetition.ExportFilename())
	assert.Equal(t, "rental_agreement.docx", RentalAgreement.ExportFilename())
	assert.Equal(t, "legal_document.docx", General.ExportFilename())
	assert.Equal(t, "legal_document.docx", Type("bogus").ExportFilename())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Divorce Petition", DivorcePetition.DisplayName())
	assert.Equal(t, "Rental Agreement", RentalAgreement.DisplayName())
	assert.Equal(t, "Legal Document", General.DisplayName())
}

func TestValid(t *testing.T) {
	assert.True(t, DivorcePetition.Valid())
	assert.True(t, RentalAgreement.Valid())
	assert.True(t, General.Valid())
	assert.False(t, Type("unknown").Valid())
	assert.False(t, Type("").Valid())
}
