package alexa

// RequestKind is the classified shape of an inbound request. Every
// envelope maps to exactly one kind before any handler runs.
type RequestKind string

const (
	KindLaunch        RequestKind = "launch"
	KindAddPoints     RequestKind = "add_points"
	KindSummary       RequestKind = "summary"
	KindConfigureKids RequestKind = "configure_kids"
	KindHelp          RequestKind = "help"
	KindStop          RequestKind = "stop"
	KindFallback      RequestKind = "fallback"
	KindCanFulfill    RequestKind = "can_fulfill"
	KindSessionEnded  RequestKind = "session_ended"
	KindUnknown       RequestKind = "unknown"
)

// Classify maps an envelope to its request kind.
func Classify(env *RequestEnvelope) RequestKind {
	switch env.Request.Type {
	case typeLaunch:
		return KindLaunch
	case typeSessionEnded:
		return KindSessionEnded
	case typeCanFulfill:
		return KindCanFulfill
	case typeIntent:
		return classifyIntent(env.IntentName())
	default:
		return KindUnknown
	}
}

func classifyIntent(name string) RequestKind {
	switch name {
	case intentAddPoints:
		return KindAddPoints
	case intentSummary:
		return KindSummary
	case intentConfigureKids:
		return KindConfigureKids
	case intentHelp:
		return KindHelp
	case intentStop, intentCancel:
		return KindStop
	case intentFallback:
		return KindFallback
	default:
		return KindUnknown
	}
}
