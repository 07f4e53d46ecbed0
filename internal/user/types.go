// Package user resolves the live git identity back to a gitid profile.
package user

import "github.com/gitid-dev/gitid/internal/git"

// SourceLocal indicates the identity came from the repository config.
const SourceLocal = "local"

// SourceGlobal indicates the identity came from ~/.gitconfig.
const SourceGlobal = "global"

// Identity is the git user.name and user.email in effect. Empty fields are
// unset.
type Identity struct {
	// Name is the git user.name.
	Name string `json:"name"`

	// Email is the git user.email.
	Email string `json:"email"`

	// Source is the config scope the identity was read from.
	Source string `json:"source,omitempty"`
}

// IsSet reports whether both name and email are set.
func (id Identity) IsSet() bool {
	return id.Name != "" && id.Email != ""
}

// IsEmpty reports whether neither name nor email is set.
func (id Identity) IsEmpty() bool {
	return id.Name == "" && id.Email == ""
}

// IdentitySource reads user.name and user.email from one config scope.
// *git.Client implements it.
type IdentitySource interface {
	Identity(scope git.Scope) (name, email string, err error)
}
