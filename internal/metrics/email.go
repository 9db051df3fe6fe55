package metrics

import "time"

// EmailSent records a delivered email and its transport latency.
func EmailSent(template string, duration time.Duration) {
	EmailsSentTotal.WithLabelValues(template, "sent").Inc()
	EmailSendDuration.WithLabelValues(template).Observe(duration.Seconds())
}

// EmailFailed records a failed delivery attempt.
func EmailFailed(template string) {
	EmailsSentTotal.WithLabelValues(template, "failed").Inc()
}

// EmailLogWriteFailed records a delivery log row that was dropped.
func EmailLogWriteFailed() {
	EmailLogWriteFailures.Inc()
}

// BatchCompleted records the outcome of a notification batch.
func BatchCompleted(event string, success bool) {
	outcome := "success"
	if !success {
		outcome = "partial"
	}
	NotificationBatchesTotal.WithLabelValues(event, outcome).Inc()
}
