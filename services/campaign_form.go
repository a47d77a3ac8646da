package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
)

// MessageForm is the template input shared by the scheduling panels
type MessageForm struct {
	Subject string
	Body    string
}

// ApplyTemplate copies subject and body of a stored template into the form
func (f *MessageForm) ApplyTemplate(t types.Template) {
	f.Subject = t.Subject
	f.Body = t.Body
}

// AsTemplate turns the form into a new template named name
func (f *MessageForm) AsTemplate(name string) types.Template {
	return types.Template{Name: name, Subject: f.Subject, Body: f.Body}
}

// UseTemplate loads a template from the library by id or name
func (f *MessageForm) UseTemplate(ctx context.Context, library *LibraryService, idOrName string) error {
	t, err := library.FindTemplate(ctx, idOrName)
	if err != nil {
		return err
	}
	f.ApplyTemplate(*t)
	return nil
}

// SaveAsTemplate stores the current subject and body in the library
func (f *MessageForm) SaveAsTemplate(ctx context.Context, library *LibraryService, name string) (*types.Template, error) {
	return library.SaveTemplate(ctx, f.AsTemplate(name))
}

// Validate requires a subject and a body
func (f *MessageForm) Validate() error {
	if strings.TrimSpace(f.Subject) == "" || strings.TrimSpace(f.Body) == "" {
		return types.ErrMissingSubjectOrBody
	}
	return nil
}

// Preview renders the body the way it's sent, without the envelope
func (f *MessageForm) Preview() string {
	return util.Preview(f.Body)
}

// payloadBody is the body as transmitted: newlines to <br> inside a minimal html document
func (f *MessageForm) payloadBody() string {
	return util.HTMLEnvelope(f.Body)
}

// SenderForm is the sender input of the scheduling panels
type SenderForm struct {
	Senders []types.Sender
}

// AddSender appends a sender row. Non public domains don't need a password,
// they are managed through the verified domain.
func (f *SenderForm) AddSender(email, password string) {
	f.Senders = append(f.Senders, types.Sender{Email: strings.TrimSpace(email), Password: password})
}

// UseSavedSender adds a sender from the library
func (f *SenderForm) UseSavedSender(ctx context.Context, library *LibraryService, email string) error {
	senders, err := library.ListSenders(ctx)
	if err != nil {
		return err
	}
	for _, s := range senders {
		if strings.EqualFold(s.Email, strings.TrimSpace(email)) {
			f.AddSender(s.Email, s.Password)
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *SenderForm) RemoveSender(index int) error {
	if index < 0 || index >= len(f.Senders) {
		return types.ErrNotFound
	}
	f.Senders = append(f.Senders[:index], f.Senders[index+1:]...)
	return nil
}

// validSenders returns the non empty rows; public provider rows need a password
func (f *SenderForm) validSenders() ([]types.Sender, error) {
	senders := make([]types.Sender, 0, len(f.Senders))
	for _, s := range f.Senders {
		if strings.TrimSpace(s.Email) == "" {
			continue
		}
		if err := validateInput(s); err != nil {
			return nil, err
		}
		if util.SenderNeedsPassword(s.Email) && s.Password == "" {
			return nil, fmt.Errorf("%w (%s)", types.ErrSenderPassword, s.Email)
		}
		if !util.SenderNeedsPassword(s.Email) {
			s.Password = ""
		}
		senders = append(senders, s)
	}
	if len(senders) == 0 {
		return nil, types.ErrNoSender
	}
	return senders, nil
}

// ReceiverForm is either manual rows or a CSV file
type ReceiverForm struct {
	UseCSV    bool
	Receivers []types.Receiver
	CSVPath   string
}

func (f *ReceiverForm) AddReceiver(r types.Receiver) {
	r.Email = strings.TrimSpace(r.Email)
	f.Receivers = append(f.Receivers, r)
}

func (f *ReceiverForm) RemoveReceiver(index int) error {
	if index < 0 || index >= len(f.Receivers) {
		return types.ErrNotFound
	}
	f.Receivers = append(f.Receivers[:index], f.Receivers[index+1:]...)
	return nil
}

// csvBase64 reads the selected file
func (f *ReceiverForm) csvBase64() (string, error) {
	if strings.TrimSpace(f.CSVPath) == "" {
		return "", types.ErrMissingCSV
	}
	return util.ReadFileBase64(f.CSVPath)
}

// timedReceivers keeps the rows having both an email and a schedule time, times normalized
func (f *ReceiverForm) timedReceivers() ([]types.Receiver, error) {
	out := make([]types.Receiver, 0, len(f.Receivers))
	for _, r := range f.Receivers {
		if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.ScheduledAt) == "" {
			continue
		}
		ts, err := util.NormalizeTimestamp(r.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("%w (%s)", err, r.Email)
		}
		r.ScheduledAt = ts
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, types.ErrNoValidReceiver
	}
	return out, nil
}

// emailReceivers keeps the rows having an email, schedule time is not sent
func (f *ReceiverForm) emailReceivers() ([]types.Receiver, error) {
	out := make([]types.Receiver, 0, len(f.Receivers))
	for _, r := range f.Receivers {
		if strings.TrimSpace(r.Email) == "" {
			continue
		}
		r.ScheduledAt = ""
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, types.ErrNoValidReceiver
	}
	return out, nil
}
