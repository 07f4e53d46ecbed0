// Package doctor runs health checks over a gitid setup: the profile config,
// the SSH keys it points at, the managed SSH config block and the external
// tools gitid shells out to.
package doctor

import (
	"github.com/go-logr/logr"

	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/runner"
)

// Status is the outcome of a check.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	default:
		return "error"
	}
}

// CheckContext carries what checks inspect.
type CheckContext struct {
	// ConfigPath is the profile config file.
	ConfigPath string

	// Store is the loaded config, nil if StoreErr is set.
	Store    *profile.Store
	StoreErr error

	// SSHConfigPath is the SSH config file holding the managed block.
	SSHConfigPath string

	// Runner runs external tools.
	Runner runner.CommandRunner

	Log logr.Logger
}

// CheckResult is the outcome of running one check.
type CheckResult struct {
	Name    string
	Status  Status
	Message string
	Details []string
	FixHint string

	// Fixed is set when --fix repaired the problem.
	Fixed bool
}

// Check is one health check.
type Check interface {
	Name() string
	Description() string
	Run(ctx *CheckContext) *CheckResult
}

// Fixer is a Check that can repair what it finds.
type Fixer interface {
	Check
	CanFix() bool
	Fix(ctx *CheckContext) error
}

// BaseCheck provides Name and Description.
type BaseCheck struct {
	CheckName        string
	CheckDescription string
}

// Name implements Check.
func (b *BaseCheck) Name() string {
	return b.CheckName
}

// Description implements Check.
func (b *BaseCheck) Description() string {
	return b.CheckDescription
}

// CanFix reports false; embed FixableCheck instead for repairable checks.
func (b *BaseCheck) CanFix() bool {
	return false
}

// FixableCheck is a BaseCheck whose embedding type implements Fix.
type FixableCheck struct {
	BaseCheck
}

// CanFix implements Fixer.
func (f *FixableCheck) CanFix() bool {
	return true
}

// skipped is returned by checks that need a loaded config when there is none.
func skipped(name string) *CheckResult {
	return &CheckResult{
		Name:    name,
		Status:  StatusWarning,
		Message: "Skipped: configuration did not load",
	}
}
