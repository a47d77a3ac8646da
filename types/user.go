package types

const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
	UserStatusExpired  = "expired"
)

// capability flags an admin can grant
const (
	APISchedule       = "schedule"
	APIAutoSchedule   = "auto_schedule"
	APIMasterSchedule = "master_schedule"
	APIExtractEmails  = "extract_emails"
)

// DefaultAllowedAPIs is used when a user has no API permissions yet
var DefaultAllowedAPIs = []string{APISchedule, APIAutoSchedule, APIMasterSchedule, APIExtractEmails}

// User as listed by GET /admin/users
type User struct {
	ID                int64    `json:"id"`
	Email             string   `json:"email"`
	Company           string   `json:"company,omitempty"`
	Location          string   `json:"location,omitempty"`
	Role              string   `json:"role,omitempty"`
	Status            string   `json:"status"`
	AllowedAPIs       []string `json:"allowed_apis"`
	AccessDays        *int     `json:"access_days"`
	MonthlyEmailLimit *int     `json:"monthly_email_limit"`
	AccessExpiresAt   *string  `json:"access_expires_at"`
	CreatedAt         string   `json:"created_at,omitempty"`
}

// UserUsage as listed by GET /admin/email-usage. Remaining nil means unlimited.
type UserUsage struct {
	UserID            int64  `json:"user_id"`
	Email             string `json:"email"`
	MonthlyEmailLimit *int   `json:"monthly_email_limit"`
	SentThisMonth     int    `json:"sent_this_month"`
	Remaining         *int   `json:"remaining"`
}

// UserRow is a user joined client-side with its usage (Usage may be nil)
type UserRow struct {
	User  User
	Usage *UserUsage
}
