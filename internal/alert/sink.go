package alert

import "hostwatch/internal/metrics"

// Publish appends the cycle's alerts to the log.
func (l *Log) Publish(_ *metrics.Reading, alerts []Alert) {
	l.Append(alerts...)
}

// Publish forwards the cycle's alerts to the configured destinations.
func (n *Notifier) Publish(_ *metrics.Reading, alerts []Alert) {
	n.Notify(alerts)
}
