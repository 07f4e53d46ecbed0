package user

import (
	"fmt"

	"github.com/gitid-dev/gitid/internal/git"
	"github.com/gitid-dev/gitid/internal/profile"
)

// ReadIdentity returns the identity in effect. The repository config wins;
// only when it sets neither user.name nor user.email is the global config
// consulted.
func ReadIdentity(src IdentitySource) (Identity, error) {
	name, email, err := src.Identity(git.Local)
	if err != nil {
		return Identity{}, fmt.Errorf("reading local identity: %w", err)
	}
	if name != "" || email != "" {
		return Identity{Name: name, Email: email, Source: SourceLocal}, nil
	}

	name, email, err = src.Identity(git.Global)
	if err != nil {
		return Identity{}, fmt.Errorf("reading global identity: %w", err)
	}
	if name == "" && email == "" {
		return Identity{}, nil
	}
	return Identity{Name: name, Email: email, Source: SourceGlobal}, nil
}

// Resolve returns the name of the profile whose name and email both equal
// id's. Profiles are scanned in name order, so when two profiles share an
// identity the alphabetically first one wins. A partial identity never
// matches.
func Resolve(store *profile.Store, id Identity) (string, bool) {
	if !id.IsSet() {
		return "", false
	}
	for _, name := range store.Names() {
		p := store.Profiles[name]
		if p.Name == id.Name && p.Email == id.Email {
			return name, true
		}
	}
	return "", false
}

// Current reads the live identity from src and resolves it against store.
// No match is not an error.
func Current(store *profile.Store, src IdentitySource) (name string, ok bool, id Identity, err error) {
	id, err = ReadIdentity(src)
	if err != nil {
		return "", false, Identity{}, err
	}
	name, ok = Resolve(store, id)
	return name, ok, id, nil
}
