package form

import "github.com/fieldware/sitecheck/modules/checklists/domain/checklist"

// Definition parameterizes the generic checklist form runner: where the
// submission goes, where the dashboard returns to afterwards, and the
// checklist schema rendered in between. The dozens of near-identical
// inspection forms differ only in this data.
type Definition struct {
	Code     string
	Title    string
	Endpoint string
	ListPath string
	// WitnessCount is the number of attesting user ids the form collects.
	// Forms with three witnesses enforce pairwise distinctness at submit.
	WitnessCount int
	Schema       checklist.Schema
}

func (d Definition) RequiresWitnesses() bool {
	return d.WitnessCount > 0
}
