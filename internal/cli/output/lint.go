package output

// LintOutput is the JSON document written by the lint and fix commands.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintSummary counts issues across all files.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	FilesChanged  int `json:"files_changed,omitempty"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
	Hints         int `json:"hints"`
	Fixed         int `json:"fixed,omitempty"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Error       string           `json:"error,omitempty"`
	Converged   bool             `json:"converged"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is one violation. Line and column are 1-based positions
// in the source file.
type LintDiagnostic struct {
	RuleID    string `json:"rule_id"`
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	FixStatus string `json:"fix_status,omitempty"`
}

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name    string   `json:"name"`
	Extends string   `json:"extends,omitempty"`
	Chain   []string `json:"chain"`
}
