package pages

import "github.com/mcoot/clubroster/internal/web/templates/layout"

// LoginData is the login page payload. RedirectedFrom is the page the
// visitor was sent away from, already checked to be same-site.
type LoginData struct {
	layout.PageData
	RedirectedFrom string
}
