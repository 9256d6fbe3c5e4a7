package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNoteIDs(t *testing.T) {
	tests := []struct {
		name    string
		ids     []int64
		wantErr bool
	}{
		{name: "valid ids", ids: []int64{1, 42, 9000}},
		{name: "empty clears the selection", ids: nil},
		{name: "zero id", ids: []int64{1, 0}, wantErr: true},
		{name: "negative id", ids: []int64{-5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateNoteIDs(tt.ids)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
