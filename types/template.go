package types

// Template is a locally stored message template. Body may contain the
// placeholders {receiver_name}, {sender_mail} and {domain_name}.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SavedSender is a locally stored sender credential (unique by email)
type SavedSender struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
}
