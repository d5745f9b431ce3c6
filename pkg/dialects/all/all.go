// Package all registers every built-in dialect. Import it for side
// effects:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/dialects/all"
package all

import (
	// Each package registers its dialect in init().
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/snowflake"
)
