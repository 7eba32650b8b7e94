package retrieval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nyayalabs/nyaya/internal/retrieval"
)

func TestNewPgStoreTableName(t *testing.T) {
	tests := []struct {
		name  string
		table string
		ok    bool
	}{
		{"plain identifier", "bns_corpus", true},
		{"underscore prefix", "_corpus", true},
		{"digits", "corpus2", true},
		{"empty", "", false},
		{"uppercase", "Corpus", false},
		{"injection", "corpus; DROP TABLE corpus", false},
		{"leading digit", "2corpus", false},
		{"quoted", `"corpus"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := retrieval.NewPgStore(nil, tt.table, nil)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, retrieval.ErrInvalidTableName)
			}
		})
	}
}
