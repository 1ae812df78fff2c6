// Package metrics содержит prometheus-счётчики основных событий генерации.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	generationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_api",
		Subsystem: "generation",
		Name:      "requests_total",
		Help:      "Generation pipeline outcomes, by result.",
	}, []string{"result"})

	refundCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_api",
		Subsystem: "tickets",
		Name:      "refunds_total",
		Help:      "Compensating refund entries written after failed generations.",
	})
)

func init() {
	prometheus.MustRegister(generationCounter, refundCounter)
}

// RecordGenerationSuccess учитывает полностью успешный проход конвейера.
func RecordGenerationSuccess() {
	generationCounter.WithLabelValues("success").Inc()
}

// RecordGenerationFailure учитывает отказ конвейера после допуска запроса.
func RecordGenerationFailure() {
	generationCounter.WithLabelValues("failure").Inc()
}

// RecordTicketRefund учитывает успешно записанный компенсирующий возврат.
func RecordTicketRefund() {
	refundCounter.Inc()
}
