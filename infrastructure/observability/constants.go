package observability

// Metric name prefix
const (
	MetricPrefix = "bootcamp"
)

// Metric names
const (
	// Ledger metrics
	PointsTransactionsTotal = MetricPrefix + ".points.transactions_total"
	PointsClampedTotal      = MetricPrefix + ".points.clamped_total"
	PointsAwardedSum        = MetricPrefix + ".points.awarded_sum"

	// Account metrics
	UsersCreatedTotal = MetricPrefix + ".users.created_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelSource    = "source"
	LabelEventType = "event_type"
)

// Exporter types
const (
	ExporterConsole = "console"
	ExporterOTLP    = "otlp"
	ExporterNone    = "none"
)
