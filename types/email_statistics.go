package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const (
	EmailLogStatusScheduled = "scheduled"
	EmailLogStatusSent      = "sent"
	EmailLogStatusFailed    = "failed"
)

// EmailUsage is the current user's quota (GET /emails/usage). Remaining nil means unlimited.
type EmailUsage struct {
	MonthlyEmailLimit *int `json:"monthly_email_limit"`
	SentThisMonth     int  `json:"sent_this_month"`
	Remaining         *int `json:"remaining"`
}

type EmailLog struct {
	ID          LogID   `json:"id"`
	JobID       string  `json:"job_id"`
	Sender      string  `json:"sender"`
	Receiver    string  `json:"receiver"`
	Status      string  `json:"status"`
	ScheduledAt string  `json:"scheduled_at"`
	ExecutedAt  *string `json:"executed_at"`
	Error       *string `json:"error"`
	CreatedAt   string  `json:"created_at"`

	// wireID is the id token exactly as received
	wireID json.RawMessage
}

func (l *EmailLog) UnmarshalJSON(data []byte) error {
	type emailLog EmailLog
	var aux struct {
		emailLog
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = EmailLog(aux.emailLog)
	if len(aux.ID) > 0 {
		if err := l.ID.UnmarshalJSON(aux.ID); err != nil {
			return err
		}
		l.wireID = append(json.RawMessage(nil), bytes.TrimSpace(aux.ID)...)
	}
	return nil
}

// WireID returns the id in the JSON form the API sent it, so "42" and 42 stay distinct
func (l EmailLog) WireID() json.RawMessage {
	if len(l.wireID) > 0 && !bytes.Equal(l.wireID, []byte("null")) {
		return l.wireID
	}
	raw, _ := l.ID.MarshalJSON()
	return raw
}

// LogID keeps the id exactly as the API sent it (number or string)
type LogID string

func (id *LogID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = LogID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	*id = LogID(data)
	return nil
}

// MarshalJSON writes canonical integers as numbers, anything else as a string
func (id LogID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id LogID) String() string {
	return string(id)
}
