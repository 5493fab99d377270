package service

import "time"

// EventRecorder collects operational counters for the engine.
type EventRecorder interface {
	// RecordEvent counts one handled change event by outcome.
	RecordEvent(collection, kind, outcome string, elapsed time.Duration)

	// RecordNotificationDelivery counts one hand-off to the notification sink.
	RecordNotificationDelivery(err error)

	// RecordDailyReset counts documents reset by one maintenance run.
	RecordDailyReset(updated int, err error)
}
