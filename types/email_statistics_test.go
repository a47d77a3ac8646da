package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogIDMarshal(t *testing.T) {
	for id, want := range map[LogID]string{
		"42":  `42`,
		"007": `"007"`,
		"+5":  `"+5"`,
		"x1":  `"x1"`,
	} {
		out, err := json.Marshal(id)
		require.NoError(t, err, id)
		assert.Equal(t, want, string(out), id)
	}
}

func TestEmailLogKeepsWireID(t *testing.T) {
	var logs []EmailLog
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"42","status":"sent"},{"id":7},{"id":"+5"}]`), &logs))
	require.Len(t, logs, 3)

	assert.Equal(t, LogID("42"), logs[0].ID)
	assert.Equal(t, "sent", logs[0].Status)
	assert.Equal(t, `"42"`, string(logs[0].WireID()))
	assert.Equal(t, LogID("7"), logs[1].ID)
	assert.Equal(t, `7`, string(logs[1].WireID()))
	assert.Equal(t, `"+5"`, string(logs[2].WireID()))

	out, err := json.Marshal(InputBulkDelete{IDs: []json.RawMessage{logs[0].WireID(), logs[1].WireID(), logs[2].WireID()}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ids":["42",7,"+5"]}`, string(out))
}
