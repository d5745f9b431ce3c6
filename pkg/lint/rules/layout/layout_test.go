package layout

import (
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/lint/linttest"
)

func TestLT01_Spacing(t *testing.T) {
	linttest.Run(t, "testdata/LT01.yml")
}

func TestLT12_EndOfFile(t *testing.T) {
	linttest.Run(t, "testdata/LT12.yml")
}
