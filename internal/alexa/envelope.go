// Package alexa implements the voice-platform boundary: the request
// envelope, the response document, and the intent dispatch.
package alexa

import "encoding/json"

// aplInterface is the capability flag a screen device advertises.
const aplInterface = "Alexa.Presentation.APL"

// Request type constants of the platform envelope.
const (
	typeLaunch       = "LaunchRequest"
	typeIntent       = "IntentRequest"
	typeSessionEnded = "SessionEndedRequest"
	typeCanFulfill   = "CanFulfillIntentRequest"
)

// Custom and built-in intent names the skill recognizes.
const (
	intentAddPoints     = "AddPointsIntent"
	intentSummary       = "PointsSummaryIntent"
	intentConfigureKids = "ConfigureKidsIntent"
	intentHelp          = "AMAZON.HelpIntent"
	intentCancel        = "AMAZON.CancelIntent"
	intentStop          = "AMAZON.StopIntent"
	intentFallback      = "AMAZON.FallbackIntent"
)

// Slot names used by the custom intents.
const (
	slotPerson    = "person"
	slotPoints    = "points"
	slotDirection = "direction"
	slotPeriod    = "period"
	slotKids      = "kids"
)

type (
	RequestEnvelope struct {
		Version string   `json:"version"`
		Session *Session `json:"session,omitempty"`
		Context *Context `json:"context,omitempty"`
		Request Request  `json:"request"`
	}

	Session struct {
		New       bool   `json:"new"`
		SessionID string `json:"sessionId"`
		User      User   `json:"user"`
	}

	Context struct {
		System System `json:"System"`
	}

	System struct {
		User   User    `json:"user"`
		Device *Device `json:"device,omitempty"`
	}

	Device struct {
		DeviceID            string                     `json:"deviceId,omitempty"`
		SupportedInterfaces map[string]json.RawMessage `json:"supportedInterfaces,omitempty"`
	}

	User struct {
		UserID string `json:"userId"`
	}

	Request struct {
		Type      string  `json:"type"`
		RequestID string  `json:"requestId,omitempty"`
		Timestamp string  `json:"timestamp,omitempty"`
		Locale    string  `json:"locale,omitempty"`
		Intent    *Intent `json:"intent,omitempty"`
		Reason    string  `json:"reason,omitempty"`
	}

	Intent struct {
		Name  string          `json:"name"`
		Slots map[string]Slot `json:"slots,omitempty"`
	}

	Slot struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
)

// UserID returns the voice-platform user identifier, preferring the
// session over the system context.
func (e *RequestEnvelope) UserID() string {
	if e.Session != nil && e.Session.User.UserID != "" {
		return e.Session.User.UserID
	}
	if e.Context != nil {
		return e.Context.System.User.UserID
	}
	return ""
}

// SlotValue returns the raw spoken value of a slot, "" when absent.
func (e *RequestEnvelope) SlotValue(name string) string {
	if e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Slots[name].Value
}

// IntentName returns the intent of the request, "" for non-intent types.
func (e *RequestEnvelope) IntentName() string {
	if e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Name
}

// SupportsAPL reports whether the requesting device has a screen that can
// render the trend document.
func (e *RequestEnvelope) SupportsAPL() bool {
	if e.Context == nil || e.Context.System.Device == nil {
		return false
	}
	_, ok := e.Context.System.Device.SupportedInterfaces[aplInterface]
	return ok
}
