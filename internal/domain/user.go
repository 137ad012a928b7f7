package domain

type Avatar struct {
	URL string `json:"url"`
}

type UserProfile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar Avatar `json:"avatar"`
}

// Session is the authenticated identity handed explicitly to whoever needs
// it. There is no ambient global auth state.
type Session struct {
	UserID          string
	Token           string
	IsAuthenticated bool
}
