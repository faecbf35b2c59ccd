package update

import "fmt"

// NotInstalled is the sentinel version reported by the installed-version
// probe when no prior installation exists.
const NotInstalled = "0.0.0"

type Decision string

const (
	DecisionInstall   Decision = "install"   // No prior install, proceed
	DecisionUpdate    Decision = "update"    // Newer candidate, proceed
	DecisionSkip      Decision = "skip"      // Already at candidate version
	DecisionDowngrade Decision = "downgrade" // Candidate older than installed; refused
)

// Proceed reports whether the decision leads to a fetch and install.
func (d Decision) Proceed() bool {
	return d == DecisionInstall || d == DecisionUpdate
}

// Decide determines whether an install/update should proceed.
//
// candidate: version offered by the release source (e.g. "1.92.1")
// installed: version from the local probe, NotInstalled if none
//
// Returns a Decision and a human message. Downgrades are never performed;
// an older candidate yields DecisionDowngrade so the caller can warn and
// move on.
func Decide(candidate, installed string) (Decision, string) {
	if installed == NotInstalled {
		return DecisionInstall, fmt.Sprintf("Installing %s (no prior version)", candidate)
	}

	switch Compare(candidate, installed) {
	case Equal:
		return DecisionSkip, fmt.Sprintf("Already at latest version (%s)", installed)
	case Less:
		msg := fmt.Sprintf("Latest release %s is older than installed %s; refusing downgrade", candidate, installed)
		return DecisionDowngrade, msg
	default:
		return DecisionUpdate, fmt.Sprintf("Updating: %s -> %s", installed, candidate)
	}
}

// DescribeDecision returns a human-readable dry-run status.
func DescribeDecision(d Decision) string {
	switch d {
	case DecisionSkip:
		return "Already at latest version (no update needed)"
	case DecisionDowngrade:
		return "Update refused (release source offers an older version)"
	case DecisionUpdate:
		return "Update available"
	case DecisionInstall:
		return "Not installed (install available)"
	default:
		return string(d)
	}
}
