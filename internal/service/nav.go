package service

import "devconnect/internal/models"

// NavLink is one navigation entry. Action links (logout) have no path.
type NavLink struct {
	Label  string `json:"label"`
	Path   string `json:"path,omitempty"`
	Action string `json:"action,omitempty"`
}

// Navigation is the navbar for the current session.
type Navigation struct {
	Brand   NavLink   `json:"brand"`
	Links   []NavLink `json:"links"`
	Account []NavLink `json:"account"`
}

// Nav builds the navbar. A nil user means signed out.
func Nav(user *models.User) Navigation {
	nav := Navigation{
		Brand: NavLink{Label: "DevConnect", Path: "/"},
		Links: []NavLink{{Label: "Blog", Path: "/blog"}},
	}
	if user == nil {
		nav.Account = []NavLink{
			{Label: "Login", Path: "/login"},
			{Label: "Register", Path: "/register"},
		}
		return nav
	}
	nav.Links = append(nav.Links, NavLink{Label: "Dashboard", Path: "/dashboard"})
	nav.Account = []NavLink{
		{Label: "Profile", Path: "/profile"},
		{Label: "Settings", Path: "/dashboard"},
		{Label: "Logout", Action: "logout"},
	}
	return nav
}
