package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// auto-schedule modes
const (
	AutoModeManual  = "manual"
	AutoModeCSV     = "csv"
	AutoModeFullCSV = "full_csv"
)

type OutputMessage struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type OutputHealth struct {
	Status string `json:"status"`
}

// ScheduleResult is rendered as a single banner by the plain scheduler
type ScheduleResult struct {
	Success        *bool  `json:"success,omitempty"`
	Message        string `json:"message,omitempty"`
	ScheduledCount *int   `json:"scheduled_count,omitempty"`
}

// RowError is one per-row failure of a batch. Servers send either a plain string or an object.
type RowError struct {
	Row   int    `json:"row,omitempty"`
	Email string `json:"email,omitempty"`
	Error string `json:"error"`
}

func (r *RowError) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Error)
	}
	type rowError RowError
	var re rowError
	if err := json.Unmarshal(data, &re); err != nil {
		return err
	}
	*r = RowError(re)
	return nil
}

func (r RowError) String() string {
	switch {
	case r.Row > 0 && r.Email != "":
		return fmt.Sprintf("row %d (%s): %s", r.Row, r.Email, r.Error)
	case r.Row > 0:
		return fmt.Sprintf("row %d: %s", r.Row, r.Error)
	case r.Email != "":
		return fmt.Sprintf("%s: %s", r.Email, r.Error)
	}
	return r.Error
}

// BatchSummary is the structured result of auto and master scheduling, shown verbatim
type BatchSummary struct {
	Success   *bool      `json:"success,omitempty"`
	Message   string     `json:"message,omitempty"`
	Scheduled int        `json:"scheduled"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"errors,omitempty"`
	// Raw is the response body as received
	Raw json.RawMessage `json:"-"`
}

func (b *BatchSummary) UnmarshalJSON(data []byte) error {
	type batchSummary BatchSummary
	var aux struct {
		batchSummary
		ScheduledCount *int `json:"scheduled_count,omitempty"`
		FailedCount    *int `json:"failed_count,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = BatchSummary(aux.batchSummary)
	if aux.ScheduledCount != nil {
		b.Scheduled = *aux.ScheduledCount
	}
	if aux.FailedCount != nil {
		b.Failed = *aux.FailedCount
	}
	b.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// OutputExtractEmails is returned by POST /extractEmails
type OutputExtractEmails struct {
	Message        string `json:"message,omitempty"`
	CSVBase64      string `json:"csv_base64"`
	TotalRows      int    `json:"total_rows,omitempty"`
	EmailsFound    int    `json:"emails_found,omitempty"`
	OutputFilename string `json:"filename,omitempty"`
}
