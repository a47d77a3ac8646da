package types

import "encoding/json"

// for login
type InputEmailPassword struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// first signup step, requests an OTP for the email
type InputSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// second signup step
type InputSignupComplete struct {
	Email    string `json:"email" validate:"required,email"`
	OTP      string `json:"otp" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Company  string `json:"company" validate:"required"`
	Location string `json:"location" validate:"required"`
}

// InputUpdatePermissions is sent as a whole by POST /admin/update-permissions
type InputUpdatePermissions struct {
	UserID            int64    `json:"user_id" validate:"required"`
	Status            string   `json:"status" validate:"required,oneof=pending approved rejected expired"`
	AllowedAPIs       []string `json:"allowed_apis" validate:"dive,required"`
	AccessDays        int      `json:"access_days" validate:"gte=0"`
	MonthlyEmailLimit int      `json:"monthly_email_limit" validate:"gte=0"`
}

// Sender is one sender row of a campaign form
type Sender struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
}

// Receiver is one manual receiver row. ScheduledAt is only used by the plain scheduler.
type Receiver struct {
	Name        string `json:"name,omitempty"`
	Domain      string `json:"domain,omitempty"`
	Email       string `json:"email"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
}

// InputSchedule is the body of POST /scheduleEmails
type InputSchedule struct {
	Senders            []Sender   `json:"senders"`
	Receivers          []Receiver `json:"receivers,omitempty"`
	ReceiversCSVBase64 string     `json:"receivers_csv_base64,omitempty"`
	Subject            string     `json:"subject"`
	Body               string     `json:"body"`
}

// InputAutoSchedule is the body of POST /scheduleEmails/auto
type InputAutoSchedule struct {
	Mode               string     `json:"mode"`
	Senders            []Sender   `json:"senders,omitempty"`
	Receivers          []Receiver `json:"receivers,omitempty"`
	ReceiversCSVBase64 string     `json:"receivers_csv_base64,omitempty"`
	CSVBase64          string     `json:"csv_base64,omitempty"`
	Subject            string     `json:"subject"`
	Body               string     `json:"body"`
	StartTime          string     `json:"start_time"`
	GapMinutes         int        `json:"gap_minutes"`
}

// InputMasterSchedule is the body of POST /scheduleEmails/master
type InputMasterSchedule struct {
	CSVBase64 string `json:"csv_base64"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// InputExtractEmails is the body of POST /extractEmails
type InputExtractEmails struct {
	CSVBase64  string `json:"csv_base64" validate:"required"`
	ColumnName string `json:"column_name" validate:"required"`
	Workers    int    `json:"workers" validate:"min=1,max=50"`
}

type InputDomain struct {
	Domain string `json:"domain" validate:"required,fqdn"`
	Email  string `json:"email,omitempty"`
}

// InputBulkDelete carries the ids in the form the API sent them
type InputBulkDelete struct {
	IDs []json.RawMessage `json:"ids" validate:"required,min=1"`
}
