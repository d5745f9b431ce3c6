package capitalisation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leaplint/pkg/lint/linttest"
)

func TestCP01_Keywords(t *testing.T) {
	linttest.Run(t, "testdata/CP01.yml")
}

func TestCasers(t *testing.T) {
	c := newCasers()
	tests := []struct {
		policy, in, want string
	}{
		{PolicyUpper, "select", "SELECT"},
		{PolicyLower, "SeLeCt", "select"},
		{PolicyCapitalise, "SELECT", "Select"},
		{PolicyConsistent, "from", "FROM"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.apply(tt.policy, tt.in), tt.policy)
	}
}
