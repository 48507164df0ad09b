// Package metrics defines the custom Prometheus metrics of the questionnaire
// service. They are registered with the default registry at package init via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "questionnaire"

// FormsAssignedTotal counts records created by administrators.
var FormsAssignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forms_assigned_total",
		Help:      "Total number of questionnaire forms assigned to users.",
	},
)

// FormsCompletedTotal counts records moved to the completed state.
var FormsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forms_completed_total",
		Help:      "Total number of questionnaire forms completed by their owners.",
	},
)

// FormCompletionRejectedTotal counts refused completion attempts.
// Label:
//   - reason: "validation", "not_found", "already_completed", "not_owner" or "internal"
var FormCompletionRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_completion_rejected_total",
		Help:      "Total number of rejected form completion attempts, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "accepted" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
