package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChecklistSubmissions counts submission attempts per form and outcome
	// (accepted, validation_failed, duplicate_witness, backend_error).
	ChecklistSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sitecheck",
		Name:      "checklist_submissions_total",
		Help:      "Checklist form submission attempts by form code and outcome.",
	}, []string{"form", "outcome"})

	// PermitActions counts permit state-transition attempts per action and
	// outcome (ok, unavailable, backend_error).
	PermitActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sitecheck",
		Name:      "permit_actions_total",
		Help:      "Permit-to-work action attempts by action name and outcome.",
	}, []string{"action", "outcome"})
)
