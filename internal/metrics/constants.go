package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "cyberquest_http_requests_total"
	MetricNameHTTPRequestDuration  = "cyberquest_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "cyberquest_http_requests_in_flight"

	MetricNameFlagsSubmitted      = "cyberquest_flags_submitted_total"
	MetricNameHintsRevealed       = "cyberquest_hints_revealed_total"
	MetricNameChallengesCompleted = "cyberquest_challenges_completed_total"
	MetricNameRefusals            = "cyberquest_refusals_total"
	MetricNameEventHandlerErrors  = "cyberquest_event_handler_errors_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextFlagsSubmitted      = "Total number of flag submissions"
	HelpTextHintsRevealed       = "Total number of hint purchases"
	HelpTextChallengesCompleted = "Total number of challenge completions"
	HelpTextRefusals            = "Total number of refused progression operations"
	HelpTextEventHandlerErrors  = "Total number of event handler errors"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelCorrect   = "correct"
	LabelChallenge = "challenge"
	LabelReason    = "reason"
	LabelType      = "type"
)

// HTTPLatencyBuckets covers local persistence latencies up to slow requests
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
