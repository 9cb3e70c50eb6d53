package output

// CheckSummary holds aggregate statistics for a check run.
type CheckSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Hints    int `json:"hints"`
}

// CheckDiagnostic is the JSON shape of a single violation.
type CheckDiagnostic struct {
	RuleID     string `json:"rule_id"`
	Severity   string `json:"severity"`
	Kind       string `json:"kind"`
	Identifier string `json:"identifier"`
	Message    string `json:"message"`
	Expected   string `json:"expected,omitempty"`
	Actual     string `json:"actual,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
}

// CheckOutput is the JSON shape of a full check report.
type CheckOutput struct {
	Architecture string            `json:"architecture"`
	Summary      CheckSummary      `json:"summary"`
	Violations   []CheckDiagnostic `json:"violations"`
	ByKind       map[string]int    `json:"by_kind,omitempty"`
}
