package update

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		installed string
		want      Decision
	}{
		{"same version skips", "1.92.1", "1.92.1", DecisionSkip},
		{"newer candidate updates", "1.92.1", "1.91.0", DecisionUpdate},
		{"older candidate refused", "1.90.0", "1.92.1", DecisionDowngrade},
		{"sentinel installs", "1.92.1", NotInstalled, DecisionInstall},
		{"stripped suffix still skips", "2.0.0-beta", "2.0.0", DecisionSkip},
		{"zero padding skips", "1.2", "1.2.0", DecisionSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, msg := Decide(tt.candidate, tt.installed)
			assert.Equal(t, tt.want, dec)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestDecideProceed(t *testing.T) {
	proceed := map[Decision]bool{
		DecisionInstall:   true,
		DecisionUpdate:    true,
		DecisionSkip:      false,
		DecisionDowngrade: false,
	}
	for dec, want := range proceed {
		assert.Equal(t, want, dec.Proceed(), "Proceed() for %s", dec)
	}
}

func TestDescribeDecision(t *testing.T) {
	tests := []struct {
		decision     Decision
		wantContains string
	}{
		{DecisionSkip, "latest"},
		{DecisionDowngrade, "refused"},
		{DecisionUpdate, "available"},
		{DecisionInstall, "install"},
	}

	for _, tt := range tests {
		t.Run(string(tt.decision), func(t *testing.T) {
			got := DescribeDecision(tt.decision)
			assert.Contains(t, strings.ToLower(got), tt.wantContains)
		})
	}
}
