package lint

// docBaseURL is the base for rule documentation links.
const docBaseURL = "https://layerlint.dev/docs/rules/"

// BuildDocURL returns the documentation URL for a rule ID.
func BuildDocURL(ruleID string) string {
	return docBaseURL + ruleID
}

// Impact weights diagnostics for health-score style reporting.
type Impact int

// Impact levels.
const (
	ImpactLow    Impact = 25
	ImpactMedium Impact = 50
	ImpactHigh   Impact = 75
)

// Int returns the impact as a 0-100 score.
func (i Impact) Int() int {
	return int(i)
}
