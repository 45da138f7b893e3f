package posture

import (
	"context"
	"fmt"
	"strings"

	"github.com/fosrl/posture/internal/logger"
	"github.com/fosrl/posture/internal/platform"
	"golang.org/x/sync/errgroup"
)

// Check names one posture check.
type Check string

const (
	CheckDiskEncryption Check = "encryption"
	CheckAntivirus      Check = "antivirus"
	CheckScreenLock     Check = "screenlock"
)

// AllChecks is every check in report order.
var AllChecks = []Check{CheckDiskEncryption, CheckAntivirus, CheckScreenLock}

// Description is the human-readable name of the check.
func (c Check) Description() string {
	switch c {
	case CheckDiskEncryption:
		return "Disk encryption"
	case CheckAntivirus:
		return "Antivirus"
	case CheckScreenLock:
		return "Screen lock"
	default:
		return string(c)
	}
}

// ParseChecks resolves check names. An empty list selects every check.
// The result is always in report order without duplicates.
func ParseChecks(names []string) ([]Check, error) {
	if len(names) == 0 {
		return AllChecks, nil
	}

	want := make(map[Check]bool, len(names))
	for _, name := range names {
		c := Check(strings.ToLower(strings.TrimSpace(name)))
		switch c {
		case CheckDiskEncryption, CheckAntivirus, CheckScreenLock:
			want[c] = true
		default:
			return nil, fmt.Errorf("unknown check %q (valid: encryption, antivirus, screenlock)", name)
		}
	}

	var checks []Check
	for _, c := range AllChecks {
		if want[c] {
			checks = append(checks, c)
		}
	}
	return checks, nil
}

// Report holds the findings of one run. Nil findings were not requested.
type Report struct {
	Platform       platform.OS      `json:"platform" yaml:"platform"`
	DiskEncryption *Finding[string] `json:"disk_encryption,omitempty" yaml:"disk_encryption,omitempty"`
	Antivirus      *Finding[string] `json:"antivirus,omitempty" yaml:"antivirus,omitempty"`
	ScreenLock     *Finding[int]    `json:"screen_lock,omitempty" yaml:"screen_lock,omitempty"`
	ScreenLockUnit string           `json:"screen_lock_unit,omitempty" yaml:"screen_lock_unit,omitempty"`
}

// Passed reports whether every check that ran found something.
func (r *Report) Passed() bool {
	if r.DiskEncryption != nil && !r.DiskEncryption.Present {
		return false
	}
	if r.Antivirus != nil && !r.Antivirus.Present {
		return false
	}
	if r.ScreenLock != nil && !r.ScreenLock.Present {
		return false
	}
	return true
}

// RunOptions selects what Run evaluates.
type RunOptions struct {
	Checks   []Check
	Parallel bool

	// OnComplete, if set, is called as each check finishes with the report
	// being filled. With Parallel it may be called from several goroutines
	// at once, and only the finished check's field is safe to read.
	OnComplete func(*Report, Check)
}

// Run evaluates the selected checks. Checks run one after another unless
// Parallel is set; either way the report is filled in the same order.
func (c *Checker) Run(ctx context.Context, opts RunOptions) *Report {
	checks := opts.Checks
	if len(checks) == 0 {
		checks = AllChecks
	}

	report := c.NewReport()

	tasks := make([]func(context.Context), 0, len(checks))
	for _, check := range checks {
		tasks = append(tasks, c.task(check, report, opts.OnComplete))
	}

	if !opts.Parallel {
		for _, task := range tasks {
			task(ctx)
		}
		return report
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			task(gctx)
			return nil
		})
	}
	_ = g.Wait()

	return report
}

// task returns a closure that evaluates one check into report.
func (c *Checker) task(check Check, report *Report, done func(*Report, Check)) func(context.Context) {
	return func(ctx context.Context) {
		c.Evaluate(ctx, check, report)
		if done != nil {
			done(report, check)
		}
	}
}

// Evaluate runs one check and stores its finding in the matching field of
// report. Distinct checks touch distinct fields.
func (c *Checker) Evaluate(ctx context.Context, check Check, report *Report) {
	switch check {
	case CheckDiskEncryption:
		f := c.DiskEncryption(ctx)
		report.DiskEncryption = &f
	case CheckAntivirus:
		f := c.Antivirus(ctx)
		report.Antivirus = &f
	case CheckScreenLock:
		f := c.ScreenLock(ctx)
		report.ScreenLock = &f
		report.ScreenLockUnit = c.Platform().ScreenLockUnit()
	default:
		return
	}

	logger.Debug("%s check finished", check.Description())
}

// NewReport returns an empty report for the checker's platform.
func (c *Checker) NewReport() *Report {
	return &Report{Platform: c.Platform()}
}
