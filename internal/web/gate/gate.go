// Package gate decides, before any page logic runs, whether a navigable
// request passes through or is redirected. Decisions depend only on the path
// and the verified session claims.
package gate

import (
	"net/url"
	"strings"

	"github.com/mcoot/clubroster/internal/services/session"
)

const (
	LoginPath  = "/login"
	AdminPath  = "/admin"
	PlayerPath = "/dashboard"

	// RedirectParam carries the originally requested path to the login page
	RedirectParam = "redirectedFrom"
)

// RouteClass categorises a request path
type RouteClass int

const (
	Other RouteClass = iota
	Public
	Login
	PlayerArea
	AdminArea
)

func (c RouteClass) String() string {
	switch c {
	case Public:
		return "public"
	case Login:
		return "login"
	case PlayerArea:
		return "player-area"
	case AdminArea:
		return "admin-area"
	}
	return "other"
}

// Action is what the gate does with a request
type Action int

const (
	PassThrough Action = iota
	Redirect
)

// Decision is the gate's verdict. Location is set only for Redirect.
type Decision struct {
	Action   Action
	Location string
}

func pass() Decision {
	return Decision{Action: PassThrough}
}

func redirect(location string) Decision {
	return Decision{Action: Redirect, Location: location}
}

// Classify returns the route class of path
func Classify(path string) RouteClass {
	switch {
	case underPrefix(path, "/api"),
		strings.HasPrefix(path, "/static/"),
		path == "/favicon.ico",
		path == "/healthz":
		return Public
	case path == LoginPath:
		return Login
	case underPrefix(path, AdminPath):
		return AdminArea
	case underPrefix(path, PlayerPath):
		return PlayerArea
	}
	return Other
}

// underPrefix reports whether path is prefix itself or a path below it
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Decide returns the decision for a request to path. claims is nil when the
// request carries no valid session.
func Decide(path string, claims *session.Claims) Decision {
	class := Classify(path)

	if class == Public {
		return pass()
	}

	if class == Login {
		if claims != nil {
			return redirect(Landing(claims.IsAdmin))
		}
		return pass()
	}

	if claims == nil {
		return redirect(LoginRedirect(path))
	}

	switch {
	case class == AdminArea && !claims.IsAdmin:
		return redirect(PlayerPath)
	case class == PlayerArea && claims.IsAdmin:
		return redirect(AdminPath)
	}
	return pass()
}

// Landing returns the area a signed-in player is sent to
func Landing(isAdmin bool) string {
	if isAdmin {
		return AdminPath
	}
	return PlayerPath
}

// LoginRedirect returns the login URL that returns to path after sign-in
func LoginRedirect(path string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(path), "%2F", "/")
	return LoginPath + "?" + RedirectParam + "=" + escaped
}
