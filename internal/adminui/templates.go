package adminui

import (
	"fmt"
	"html/template"
	"net/http"

	"skillswap/internal/domain"
)

type templates struct {
	login     *template.Template
	dashboard *template.Template
	users     *template.Template
	errorT    *template.Template
}

type viewData struct {
	Title string
	Error string
}

type dashboardViewData struct {
	Title    string
	Admin    string
	Overview domain.AdminOverview
	Average  string
	Notice   string
}

type usersViewData struct {
	Title string
	Users []userRow
}

type userRow struct {
	ID       string
	Name     string
	Email    string
	Location string
	Type     string
	Skills   int
}

const layoutHTML = `{{define "layout"}}<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} · SkillSwap</title></head>
<body>
<nav><a href="/admin/">Overview</a> · <a href="/admin/users">Users</a>
<form method="post" action="/admin/logout" style="display:inline"><button type="submit">Log out</button></form></nav>
<main>{{template "content" .}}</main>
</body>
</html>{{end}}`

const dashboardHTML = `{{define "dashboard.html"}}{{template "layout" .}}{{end}}
{{define "content"}}<h1>Platform overview</h1>
<p>Signed in as {{.Admin}}</p>
{{with .Notice}}<p class="notice">{{.}}</p>{{end}}
<ul>
<li>Users: {{.Overview.TotalUsers}}</li>
<li>Swap requests: {{.Overview.TotalRequests}}</li>
<li>Completed swaps: {{.Overview.CompletedSwaps}}</li>
<li>Average rating: {{.Average}}</li>
</ul>
<h2>Pending requests</h2>
{{if .Overview.PendingRequests}}<table>
<tr><th>ID</th><th>From</th><th>To</th><th>Offered</th><th>Requested</th><th>Created</th></tr>
{{range .Overview.PendingRequests}}<tr><td>{{.ID}}</td><td>{{.FromUserID}}</td><td>{{.ToUserID}}</td><td>{{.SkillOffered.Name}}</td><td>{{.SkillRequested.Name}}</td><td>{{.CreatedAt.Format "2006-01-02"}}</td></tr>
{{end}}</table>{{else}}<p>No pending requests.</p>{{end}}
<h2>Recent users</h2>
<ul>{{range .Overview.RecentUsers}}<li>{{.Name}} ({{.Location}})</li>{{end}}</ul>
<h2>Reports</h2>
<p><a href="/admin/reports/users">Users CSV</a> · <a href="/admin/reports/swaps">Swaps CSV</a> · <a href="/admin/reports/ratings">Ratings CSV</a></p>
<h2>Broadcast</h2>
{{with .Overview.LastBroadcast}}<p>Last: {{.Body}} ({{.CreatedAt.Format "2006-01-02 15:04"}})</p>{{end}}
<form method="post" action="/admin/broadcast">
<textarea name="message" maxlength="1000" required></textarea>
<button type="submit">Send to all users</button>
</form>{{end}}`

const usersHTML = `{{define "users.html"}}{{template "layout" .}}{{end}}
{{define "content"}}<h1>Users</h1>
<table>
<tr><th>ID</th><th>Name</th><th>Email</th><th>Location</th><th>Type</th><th>Skills offered</th></tr>
{{range .Users}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Location}}</td><td>{{.Type}}</td><td>{{.Skills}}</td></tr>
{{end}}</table>{{end}}`

const loginHTML = `{{define "login.html"}}<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} · SkillSwap</title></head>
<body>
<h1>{{.Title}}</h1>
{{with .Error}}<p class="error">{{.}}</p>{{end}}
<form method="post" action="/admin/login">
<label>Email <input type="email" name="email" required></label>
<button type="submit">Sign in</button>
</form>
</body>
</html>{{end}}`

const errorHTML = `{{define "error.html"}}<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} · SkillSwap</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Error}}</p>
<p><a href="/admin/">Back</a></p>
</body>
</html>{{end}}`

func parseTemplates() (*templates, error) {
	parse := func(sources ...string) (*template.Template, error) {
		t := template.New("base")
		for _, src := range sources {
			if _, err := t.Parse(src); err != nil {
				return nil, err
			}
		}
		return t, nil
	}

	login, err := parse(loginHTML)
	if err != nil {
		return nil, fmt.Errorf("parse login: %w", err)
	}
	dashboard, err := parse(layoutHTML, dashboardHTML)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard: %w", err)
	}
	users, err := parse(layoutHTML, usersHTML)
	if err != nil {
		return nil, fmt.Errorf("parse users: %w", err)
	}
	errorT, err := parse(errorHTML)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return &templates{login: login, dashboard: dashboard, users: users, errorT: errorT}, nil
}

func (t *templates) render(w http.ResponseWriter, tmpl *template.Template, name string, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = tmpl.ExecuteTemplate(w, name, data)
}

func (t *templates) renderLogin(w http.ResponseWriter, status int, data any) {
	t.render(w, t.login, "login.html", status, data)
}

func (t *templates) renderDashboard(w http.ResponseWriter, status int, data any) {
	t.render(w, t.dashboard, "dashboard.html", status, data)
}

func (t *templates) renderUsers(w http.ResponseWriter, status int, data any) {
	t.render(w, t.users, "users.html", status, data)
}

func (t *templates) renderError(w http.ResponseWriter, status int, title, msg string) {
	t.render(w, t.errorT, "error.html", status, viewData{Title: title, Error: msg})
}
