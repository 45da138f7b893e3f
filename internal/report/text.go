package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fosrl/posture/internal/logger"
	"github.com/fosrl/posture/internal/posture"
	"github.com/mattn/go-isatty"
)

const header = "Verifying system security..."

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.ColorSuccess))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.ColorError))
)

// TextWriter prints the human-readable report, one line per check.
type TextWriter struct {
	w     io.Writer
	color bool
}

// NewTextWriter colours lines only when w is a terminal.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w, color: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Header prints the banner shown before any check runs.
func (t *TextWriter) Header() {
	fmt.Fprintln(t.w, header)
}

// Check prints the line for one check of r. Checks that did not run
// print nothing.
func (t *TextWriter) Check(r *posture.Report, check posture.Check) {
	line, passed, ok := Line(r, check)
	if !ok {
		return
	}

	if t.color {
		if passed {
			line = passStyle.Render(line)
		} else {
			line = failStyle.Render(line)
		}
	}
	fmt.Fprintln(t.w, line)
}

// Write prints the banner followed by every check that ran, in report order.
func (t *TextWriter) Write(r *posture.Report) {
	t.Header()
	for _, check := range posture.AllChecks {
		t.Check(r, check)
	}
}

// Line renders the fixed message for one check. ok is false when the check
// was not part of the run.
func Line(r *posture.Report, check posture.Check) (line string, passed bool, ok bool) {
	switch check {
	case posture.CheckDiskEncryption:
		if r.DiskEncryption == nil {
			return "", false, false
		}
		if label, present := r.DiskEncryption.Get(); present {
			return fmt.Sprintf("✅ The disk is encrypted with %s.", label), true, true
		}
		return "❌ The disk is not encrypted.", false, true

	case posture.CheckAntivirus:
		if r.Antivirus == nil {
			return "", false, false
		}
		if label, present := r.Antivirus.Get(); present {
			return fmt.Sprintf("✅ Antivirus protection detected: %s", label), true, true
		}
		return "❌ No antivirus detected.", false, true

	case posture.CheckScreenLock:
		if r.ScreenLock == nil {
			return "", false, false
		}
		if timeout, present := r.ScreenLock.Get(); present {
			return fmt.Sprintf("✅ Screen lock is set to activate after %d %s of inactivity.", timeout, r.Platform.ScreenLockUnit()), true, true
		}
		return "❌ Screen lock is not configured or is disabled.", false, true
	}

	return "", false, false
}
