package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	"strings"
	texttemplate "text/template"
	"time"

	"campus-notifier/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Content 渲染一次、发给所有收件人的三段内容
type Content struct {
	Kind    Kind
	Subject string
	Text    string
	HTML    string
}

type Kind string

const (
	KindEvent       Kind = "event"
	KindOpportunity Kind = "opportunity"
	KindWelcome     Kind = "welcome"
)

// longDate 例如 "Mon, 02 Jun 2025, 09:00 AM"
func longDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006, 03:04 PM")
}

// postedDate 例如 "Monday, June 2nd, 2025 at 9:00 AM"
func postedDate(t time.Time) string {
	return t.Format("Monday, January ") + ordinal(t.Day()) + t.Format(", 2006 at 3:04 PM")
}

func ordinal(day int) string {
	suffix := "th"
	switch day % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	if day%100 >= 11 && day%100 <= 13 {
		suffix = "th"
	}
	return strconv.Itoa(day) + suffix
}

type templates struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func parseTemplates() templates {
	funcs := map[string]any{
		"longDate":   longDate,
		"postedDate": postedDate,
		"join":       strings.Join,
	}
	return templates{
		text: texttemplate.Must(texttemplate.New("text").Funcs(funcs).ParseFS(templateFS, "templates/*.txt.tmpl")),
		html: htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl")),
	}
}

func (t templates) render(kind Kind, subject string, data any) (Content, error) {
	var text, html bytes.Buffer
	if err := t.text.ExecuteTemplate(&text, string(kind)+".txt.tmpl", data); err != nil {
		return Content{}, fmt.Errorf("render %s text: %w", kind, err)
	}
	if err := t.html.ExecuteTemplate(&html, string(kind)+".html.tmpl", data); err != nil {
		return Content{}, fmt.Errorf("render %s html: %w", kind, err)
	}
	return Content{Kind: kind, Subject: subject, Text: text.String(), HTML: html.String()}, nil
}

type common struct {
	AppName         string
	Link            string
	PreferencesLink string
	Now             time.Time
}

func (n *Notifier) common(path string) common {
	base := strings.TrimRight(n.opts.FrontendURL, "/")
	return common{
		AppName:         n.opts.AppName,
		Link:            base + path,
		PreferencesLink: base + "/preferences",
		Now:             n.opts.Now().In(n.opts.Location),
	}
}

// EventContent 活动日期按配置的时区格式化
func (n *Notifier) EventContent(e model.Event) (Content, error) {
	e.OpeningDate = e.OpeningDate.In(n.opts.Location)
	e.ClosingDate = e.ClosingDate.In(n.opts.Location)
	data := struct {
		common
		Event model.Event
	}{n.common(fmt.Sprintf("/events/%d", e.ID)), e}
	subject := fmt.Sprintf("📅 New Event: %s — Mark Your Calendar", e.Title)
	return n.tmpl.render(KindEvent, subject, data)
}

func (n *Notifier) OpportunityContent(o model.Opportunity) (Content, error) {
	data := struct {
		common
		Opportunity model.Opportunity
	}{n.common(fmt.Sprintf("/opportunities/%d", o.ID)), o}
	subject := fmt.Sprintf("🎯 New Opportunity: %s - %s", o.Title, o.Organization)
	return n.tmpl.render(KindOpportunity, subject, data)
}

func (n *Notifier) WelcomeContent(u model.User) (Content, error) {
	data := struct {
		common
		User model.User
	}{n.common("/login"), u}
	return n.tmpl.render(KindWelcome, fmt.Sprintf("Welcome to %s!", n.opts.AppName), data)
}
