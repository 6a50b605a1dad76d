package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TelegramUpdatesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "duobot_telegram_updates_received"},
		[]string{"bot"},
	)
	FlowsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "duobot_flows_started"},
		[]string{"flow"},
	)
	FlowsCommitted = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "duobot_flows_committed"},
		[]string{"flow"},
	)
	InvalidAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "duobot_flow_invalid_answers"},
		[]string{"flow", "field"},
	)
	ChallengesIssued = promauto.NewCounter(
		prometheus.CounterOpts{Name: "duobot_challenges_issued"},
	)
	GuessesChecked = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "duobot_guesses_checked"},
		[]string{"result"},
	)
	ExternalFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "duobot_external_service_failures"},
		[]string{"service"},
	)
)
