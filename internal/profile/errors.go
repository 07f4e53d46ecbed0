package profile

import "errors"

// Configuration errors.
var (
	// ErrInvalidPlatform indicates a platform other than github, gitlab or both.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrEmptyName indicates the git user name is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyEmail indicates the email is empty.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrEmptySSHKey indicates the SSH key path is empty.
	ErrEmptySSHKey = errors.New("SSH key path cannot be empty")

	// ErrInvalidProfileName indicates a profile name that cannot be used as
	// an SSH Host alias suffix.
	ErrInvalidProfileName = errors.New("invalid profile name")

	// ErrDanglingDefault indicates default_profile names a missing profile.
	ErrDanglingDefault = errors.New("default profile does not exist")
)

// Lookup errors.
var (
	// ErrProfileNotFound indicates the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists indicates a profile with that name already exists.
	ErrProfileExists = errors.New("profile already exists")
)
