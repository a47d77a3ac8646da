package repository

import (
	"testing"

	"github.com/mailio/go-campaign-console/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToListBareArray(t *testing.T) {
	resp := &Response{StatusCode: 200, IsJSON: true, Body: []byte(`[{"id": 1, "email": "a@b.com"}]`)}
	users, err := MapToList[types.User](resp, "users")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].ID)
}

func TestMapToListWrapped(t *testing.T) {
	resp := &Response{StatusCode: 200, IsJSON: true, Body: []byte(`{"logs": [{"id": "x1", "status": "sent"}, {"id": 7, "status": "failed"}]}`)}
	logs, err := MapToList[types.EmailLog](resp, "logs", "data")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, types.LogID("x1"), logs[0].ID)
	assert.Equal(t, types.LogID("7"), logs[1].ID)
}

func TestMapToListNullAndEmpty(t *testing.T) {
	logs, err := MapToList[types.EmailLog](&Response{IsJSON: true, Body: []byte(`{"logs": null}`)}, "logs")
	require.NoError(t, err)
	assert.Empty(t, logs)

	logs, err = MapToList[types.EmailLog](&Response{IsJSON: true}, "logs")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMapToListUnknownWrapper(t *testing.T) {
	_, err := MapToList[types.Domain](&Response{IsJSON: true, Body: []byte(`{"items": []}`)}, "domains")
	assert.Error(t, err)
}
