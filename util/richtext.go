package util

import (
	"fmt"
	"html"
	"strings"

	"github.com/mailio/go-campaign-console/types"
)

// placeholders replaced by the server for every receiver
const (
	PlaceholderReceiverName = "{receiver_name}"
	PlaceholderSenderMail   = "{sender_mail}"
	PlaceholderDomainName   = "{domain_name}"
)

// FormattingTags are the tags the editor toolbar can insert
var FormattingTags = []string{"b", "i", "u", "strong", "em", "p", "h1", "h2", "h3", "a"}

func Placeholders() []string {
	return []string{PlaceholderReceiverName, PlaceholderSenderMail, PlaceholderDomainName}
}

func isFormattingTag(tag string) bool {
	for _, t := range FormattingTags {
		if t == tag {
			return true
		}
	}
	return false
}

// WrapSelection wraps text[start:end] (rune offsets) in <tag>...</tag>. An empty
// selection inserts an empty pair. The returned cursor is placed after the closing tag,
// or between the tags when nothing was selected. href is only used for "a".
func WrapSelection(text string, start, end int, tag string, href string) (string, int, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if !isFormattingTag(tag) {
		return text, start, fmt.Errorf("unsupported tag <%s>", tag)
	}
	runes := []rune(text)
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > len(runes) {
		return text, start, types.ErrInvalidSelection
	}
	open := "<" + tag + ">"
	if tag == "a" {
		open = fmt.Sprintf("<a href=\"%s\">", html.EscapeString(href))
	}
	closing := "</" + tag + ">"

	selected := string(runes[start:end])
	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(open)
	b.WriteString(selected)
	b.WriteString(closing)
	b.WriteString(string(runes[end:]))

	cursor := start + len([]rune(open)) + len([]rune(selected))
	if start != end {
		cursor += len([]rune(closing))
	}
	return b.String(), cursor, nil
}

// InsertAtCursor inserts token at the rune offset pos and returns the cursor after it
func InsertAtCursor(text string, pos int, token string) (string, int, error) {
	runes := []rune(text)
	if pos < 0 || pos > len(runes) {
		return text, pos, types.ErrInvalidSelection
	}
	out := string(runes[:pos]) + token + string(runes[pos:])
	return out, pos + len([]rune(token)), nil
}

// Preview converts newlines into line breaks the way the body is sent
func Preview(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\n", "<br>")
}

// HTMLEnvelope is the minimal document every campaign body is wrapped in before sending
func HTMLEnvelope(body string) string {
	return "<html><body>" + Preview(body) + "</body></html>"
}

// RenderPlaceholders substitutes the placeholders with sample values (preview only)
func RenderPlaceholders(body, receiverName, senderMail, domainName string) string {
	r := strings.NewReplacer(
		PlaceholderReceiverName, receiverName,
		PlaceholderSenderMail, senderMail,
		PlaceholderDomainName, domainName,
	)
	return r.Replace(body)
}
