package posture

import (
	"context"

	"github.com/fosrl/posture/internal/logger"
	"github.com/fosrl/posture/internal/osquery"
	"github.com/fosrl/posture/internal/platform"
)

// QueryRunner returns the rows for a query, or no rows on any failure.
// *osquery.Runner satisfies it.
type QueryRunner interface {
	Run(ctx context.Context, query string) osquery.Result
}

// Checker evaluates posture checks for one platform.
type Checker struct {
	runner  QueryRunner
	profile Profile
}

func NewChecker(runner QueryRunner, os platform.OS) *Checker {
	return &Checker{runner: runner, profile: ProfileFor(os)}
}

// Platform returns the family the checker branches on.
func (c *Checker) Platform() platform.OS {
	return c.profile.OS
}

// DiskEncryption reports the encryption technology when any volume is
// encrypted. A missing or non-numeric status counts as not encrypted.
func (c *Checker) DiskEncryption(ctx context.Context) Finding[string] {
	return guard("disk encryption", func() Finding[string] {
		rule := c.profile.DiskEncryption

		for _, row := range c.runner.Run(ctx, rule.Query) {
			if status, ok := row.Int(rule.Field); ok && status == 1 {
				return Some(rule.Label)
			}
		}
		return None[string]()
	})
}

// Antivirus reports the first antivirus product found. Queries are tried
// in order and the first one with rows wins; later queries are not run.
func (c *Checker) Antivirus(ctx context.Context) Finding[string] {
	return guard("antivirus", func() Finding[string] {
		rule := c.profile.Antivirus

		for _, query := range rule.Queries {
			result := c.runner.Run(ctx, query)
			if len(result) == 0 {
				continue
			}

			if rule.FixedLabel != "" {
				return Some(rule.FixedLabel)
			}
			if name, ok := result[0].String(rule.NameField); ok && name != "" {
				return Some(name)
			}
			return Some(rule.FallbackLabel)
		}
		return None[string]()
	})
}

// ScreenLock reports the idle timeout before the screen locks, in minutes
// on macOS and Windows and in seconds on Linux. Zero, negative, missing
// and unparseable timeouts are all reported as absent.
func (c *Checker) ScreenLock(ctx context.Context) Finding[int] {
	return guard("screen lock", func() Finding[int] {
		rule := c.profile.ScreenLock

		result := c.runner.Run(ctx, rule.Query)
		if len(result) == 0 {
			return None[int]()
		}

		for _, field := range rule.Fields {
			if _, ok := result[0][field]; !ok {
				continue
			}

			seconds, ok := result[0].Int(field)
			if !ok || seconds <= 0 {
				return None[int]()
			}
			return Some(int(seconds / rule.Divisor))
		}
		return None[int]()
	})
}

// guard isolates a check so a panic while interpreting rows is reported
// as an absent finding instead of aborting the remaining checks.
func guard[T any](name string, fn func() Finding[T]) (finding Finding[T]) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("%s check failed: %v", name, r)
			finding = None[T]()
		}
	}()
	return fn()
}
