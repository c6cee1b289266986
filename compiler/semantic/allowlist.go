package semantic

const (
	// TotalCountAlias and TotalTransactionDurationAlias are the only
	// fields that may appear in an equation alongside aggregate functions.
	TotalCountAlias               = "total.count"
	TotalTransactionDurationAlias = "total.transaction_duration"

	DefaultMaxOperators = 10
)

// FieldAllowlist holds the bare fields usable as operands.
var FieldAllowlist = set(
	"transaction.duration",
	"spans.http",
	"spans.db",
	"spans.resource",
	"spans.browser",
	"spans.total.time",
	"measurements.app_start_cold",
	"measurements.app_start_warm",
	"measurements.cls",
	"measurements.fcp",
	"measurements.fid",
	"measurements.fp",
	"measurements.frames_frozen",
	"measurements.frames_slow",
	"measurements.frames_total",
	"measurements.lcp",
	"measurements.stall_count",
	"measurements.stall_stall_longest_time",
	"measurements.stall_stall_total_time",
	"measurements.time_to_full_display",
	"measurements.time_to_initial_display",
	"measurements.ttfb",
	"measurements.ttfb.requesttime",
	TotalCountAlias,
	TotalTransactionDurationAlias,
)

// FunctionAllowlist holds the aggregate function names usable as operands.
var FunctionAllowlist = set(
	"count",
	"count_if",
	"count_unique",
	"failure_count",
	"min",
	"max",
	"avg",
	"sum",
	"p50",
	"p75",
	"p95",
	"p99",
	"p100",
	"percentile",
	"apdex",
	"user_misery",
	"eps",
	"epm",
	"count_miserable",
	"count_web_vitals",
	"percentile_range",
)

// mixingExceptions are the fields that permit functions in the same
// equation.
var mixingExceptions = set(TotalCountAlias, TotalTransactionDurationAlias)

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, name := range names {
		m[name] = struct{}{}
	}
	return m
}

// Names returns the allowed fields and the allowed function names, each
// followed by "(", in sorted order.
func Names() []string {
	names := sortedKeys(FieldAllowlist)
	for _, f := range sortedKeys(FunctionAllowlist) {
		names = append(names, f+"(")
	}
	return names
}
