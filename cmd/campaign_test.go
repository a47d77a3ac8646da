package main

import (
	"testing"

	"github.com/tj/assert"
)

func TestParseReceiver(t *testing.T) {
	email, rest := parseReceiver(" jane@acme.com | 2024-05-01 10:00 |Jane")
	assert.Equal(t, "jane@acme.com", email)
	assert.Equal(t, []string{"2024-05-01 10:00", "Jane", ""}, rest)

	email, rest = parseReceiver("bob@acme.com")
	assert.Equal(t, "bob@acme.com", email)
	assert.Equal(t, []string{"", "", ""}, rest)
}
