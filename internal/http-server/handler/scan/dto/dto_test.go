package dto

import (
	"encoding/json"
	"testing"

	"pdf-qr-scanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecords_Shape(t *testing.T) {
	out, err := json.Marshal(FromRecords([]domain.ResultRecord{
		domain.SuccessRecord("a.pdf", ""),
		domain.ErrorRecord("b.pdf", "Failed to process PDF: boom"),
	}))
	require.NoError(t, err)

	// An empty payload is still reported under qr_data.
	assert.JSONEq(t, `[
		{"filename":"a.pdf","status":"success","qr_data":""},
		{"filename":"b.pdf","status":"error","error":"Failed to process PDF: boom"}
	]`, string(out))
}

func TestFromRecords_Empty(t *testing.T) {
	out, err := json.Marshal(FromRecords(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}
