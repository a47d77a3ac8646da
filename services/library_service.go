package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
)

// LibraryService owns the locally stored templates and saved senders shared by all panels.
// Every mutation rewrites the whole collection.
type LibraryService struct {
	templates *repository.Collection[types.Template]
	senders   *repository.Collection[types.SavedSender]
}

func NewLibraryService(storage repository.Storage) *LibraryService {
	return &LibraryService{
		templates: repository.NewCollection[types.Template](storage, repository.TemplatesKey),
		senders:   repository.NewCollection[types.SavedSender](storage, repository.SendersKey),
	}
}

func (s *LibraryService) ListTemplates(ctx context.Context) ([]types.Template, error) {
	return s.templates.Load(ctx)
}

// FindTemplate looks a template up by id, or by name (case insensitive)
func (s *LibraryService) FindTemplate(ctx context.Context, idOrName string) (*types.Template, error) {
	templates, err := s.templates.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		if t.ID == idOrName {
			return &t, nil
		}
	}
	for _, t := range templates {
		if strings.EqualFold(t.Name, idOrName) {
			return &t, nil
		}
	}
	return nil, types.ErrNotFound
}

// SaveTemplate appends a new template (empty ID) with a fresh time ordered id,
// or replaces the template with the same ID
func (s *LibraryService) SaveTemplate(ctx context.Context, template types.Template) (*types.Template, error) {
	template.Name = strings.TrimSpace(template.Name)
	if err := validateInput(template); err != nil {
		return nil, err
	}
	templates, err := s.templates.Load(ctx)
	if err != nil {
		return nil, err
	}
	if template.ID == "" {
		template.ID = newTemplateID()
		templates = append(templates, template)
	} else {
		found := false
		for i := range templates {
			if templates[i].ID == template.ID {
				templates[i] = template
				found = true
				break
			}
		}
		if !found {
			return nil, types.ErrNotFound
		}
	}
	if err := s.templates.SaveAll(ctx, templates); err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *LibraryService) DeleteTemplate(ctx context.Context, id string) error {
	templates, err := s.templates.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]types.Template, 0, len(templates))
	for _, t := range templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.templates.SaveAll(ctx, kept)
}

func (s *LibraryService) ListSenders(ctx context.Context) ([]types.SavedSender, error) {
	return s.senders.Load(ctx)
}

// SaveSender upserts by email
func (s *LibraryService) SaveSender(ctx context.Context, sender types.SavedSender) error {
	sender.Email = strings.TrimSpace(sender.Email)
	if err := validateInput(sender); err != nil {
		return err
	}
	senders, err := s.senders.Load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range senders {
		if strings.EqualFold(senders[i].Email, sender.Email) {
			senders[i] = sender
			replaced = true
			break
		}
	}
	if !replaced {
		senders = append(senders, sender)
	}
	return s.senders.SaveAll(ctx, senders)
}

func (s *LibraryService) DeleteSender(ctx context.Context, email string) error {
	senders, err := s.senders.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]types.SavedSender, 0, len(senders))
	for _, sender := range senders {
		if !strings.EqualFold(sender.Email, strings.TrimSpace(email)) {
			kept = append(kept, sender)
		}
	}
	return s.senders.SaveAll(ctx, kept)
}

func newTemplateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
