package doctor

import "fmt"

// Report aggregates check results.
type Report struct {
	Results  []*CheckResult
	OK       int
	Warnings int
	Errors   int
	Fixed    int
}

// HasErrors reports whether any check ended in StatusError.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// DefaultChecks returns the standard checks in run order.
func DefaultChecks() []Check {
	return []Check{
		NewConfigCheck(),
		NewSSHKeysCheck(),
		NewSSHConfigCheck(),
		NewToolsCheck(),
	}
}

// Run executes checks in order. With fix, a failing check that can repair
// itself is fixed and then re-run.
func Run(ctx *CheckContext, checks []Check, fix bool) *Report {
	r := &Report{}
	for _, c := range checks {
		res := c.Run(ctx)

		if fix && res.Status != StatusOK {
			if f, ok := c.(Fixer); ok && f.CanFix() {
				ctx.Log.V(1).Info("fixing", "check", c.Name())
				if err := f.Fix(ctx); err != nil {
					res.Details = append(res.Details, fmt.Sprintf("Fix failed: %v", err))
				} else {
					res = c.Run(ctx)
					res.Fixed = true
				}
			}
		}

		switch res.Status {
		case StatusOK:
			r.OK++
		case StatusWarning:
			r.Warnings++
		default:
			r.Errors++
		}
		if res.Fixed {
			r.Fixed++
		}
		r.Results = append(r.Results, res)
	}
	return r
}
