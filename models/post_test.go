package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePostRequest_UserIDForms(t *testing.T) {
	tests := []struct {
		body string
		want OwnerID
	}{
		{`{"userID": 7}`, "7"},
		{`{"userID": "7"}`, "7"},
		{`{"userID": "abc"}`, "abc"},
		{`{"userID": null}`, ""},
		{`{}`, ""},
	}

	for _, tc := range tests {
		var req UpdatePostRequest
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req), tc.body)
		assert.Equal(t, tc.want, req.UserID, tc.body)
	}

	var req UpdatePostRequest
	assert.Error(t, json.Unmarshal([]byte(`{"userID": true}`), &req))
}
