package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
)

func (s *shell) fprintf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// templates list|save|delete <id>
func (s *shell) templatesCommand(args []string) {
	library := s.console.Library
	ctx := context.Background()
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "list":
		templates, err := library.ListTemplates(ctx)
		if err != nil {
			s.report(err)
			return
		}
		if len(templates) == 0 {
			s.printf("No templates\n")
			return
		}
		w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
		s.fprintf(w, "ID\tNAME\tSUBJECT\n")
		for _, t := range templates {
			s.fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Subject)
		}
		w.Flush()
	case "show":
		if len(args) < 2 {
			s.printf("Usage: templates show <id|name>\n")
			return
		}
		t, err := library.FindTemplate(ctx, args[1])
		if err != nil {
			s.report(err)
			return
		}
		s.printf("Name: %s\nSubject: %s\n\n%s\n", t.Name, t.Subject, t.Body)
	case "save":
		var t types.Template
		if len(args) > 1 {
			existing, err := library.FindTemplate(ctx, args[1])
			if err != nil {
				s.report(err)
				return
			}
			t = *existing
		}
		t.Name = s.promptDefault("Name", t.Name)
		t.Subject = s.promptDefault("Subject", t.Subject)
		body, ok := s.promptText("Body")
		if ok && body != "" {
			t.Body = body
		}
		saved, err := library.SaveTemplate(ctx, t)
		if err != nil {
			s.report(err)
			return
		}
		s.printf("Template %s saved (%s)\n", saved.Name, saved.ID)
	case "delete":
		if len(args) < 2 {
			s.printf("Usage: templates delete <id|name>\n")
			return
		}
		t, err := library.FindTemplate(ctx, args[1])
		if err != nil {
			s.report(err)
			return
		}
		if err := library.DeleteTemplate(ctx, t.ID); err != nil {
			s.report(err)
			return
		}
		s.printf("Template %s deleted\n", t.Name)
	default:
		s.printf("Usage: templates [list|show <id>|save [id]|delete <id>]\n")
	}
}

// senders list|save <email>|delete <email>
func (s *shell) sendersCommand(args []string) {
	library := s.console.Library
	ctx := context.Background()
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "list":
		senders, err := library.ListSenders(ctx)
		if err != nil {
			s.report(err)
			return
		}
		if len(senders) == 0 {
			s.printf("No saved senders\n")
			return
		}
		for _, sender := range senders {
			auth := "managed via domain"
			if sender.Password != "" {
				auth = "password saved"
			}
			s.printf("%s (%s)\n", sender.Email, auth)
		}
	case "save":
		if len(args) < 2 {
			s.printf("Usage: senders save <email>\n")
			return
		}
		sender := types.SavedSender{Email: args[1]}
		if util.SenderNeedsPassword(sender.Email) {
			password, ok := s.promptSecret("Password: ")
			if !ok {
				return
			}
			sender.Password = password
		}
		if err := library.SaveSender(ctx, sender); err != nil {
			s.report(err)
			return
		}
		s.printf("Sender %s saved\n", sender.Email)
	case "delete":
		if len(args) < 2 {
			s.printf("Usage: senders delete <email>\n")
			return
		}
		if err := library.DeleteSender(ctx, args[1]); err != nil {
			s.report(err)
			return
		}
		s.printf("Sender %s deleted\n", args[1])
	default:
		s.printf("Usage: senders [list|save <email>|delete <email>]\n")
	}
}
