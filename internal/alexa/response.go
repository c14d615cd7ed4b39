package alexa

import "encoding/json"

// trendToken identifies the rendered trend document so later directives
// could address it.
const trendToken = "kidpointsTrend"

type (
	ResponseEnvelope struct {
		Version  string   `json:"version"`
		Response Response `json:"response"`
	}

	Response struct {
		OutputSpeech     *OutputSpeech     `json:"outputSpeech,omitempty"`
		Reprompt         *Reprompt         `json:"reprompt,omitempty"`
		Directives       []Directive       `json:"directives,omitempty"`
		CanFulfillIntent *CanFulfillIntent `json:"canFulfillIntent,omitempty"`
		ShouldEndSession bool              `json:"shouldEndSession"`
	}

	OutputSpeech struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}

	Reprompt struct {
		OutputSpeech OutputSpeech `json:"outputSpeech"`
	}

	Directive struct {
		Type        string          `json:"type"`
		Token       string          `json:"token,omitempty"`
		Document    json.RawMessage `json:"document,omitempty"`
		Datasources map[string]any  `json:"datasources,omitempty"`
	}

	CanFulfillIntent struct {
		CanFulfill string                    `json:"canFulfill"`
		Slots      map[string]CanFulfillSlot `json:"slots,omitempty"`
	}

	CanFulfillSlot struct {
		CanUnderstand string `json:"canUnderstand"`
		CanFulfill    string `json:"canFulfill"`
	}
)

func plainSpeech(text string) *OutputSpeech {
	return &OutputSpeech{Type: "PlainText", Text: text}
}

// Tell speaks the text and closes the session.
func Tell(text string) ResponseEnvelope {
	return ResponseEnvelope{
		Version: "1.0",
		Response: Response{
			OutputSpeech:     plainSpeech(text),
			ShouldEndSession: true,
		},
	}
}

// Ask speaks the text, keeps the session open and arms a re-prompt.
func Ask(text, reprompt string) ResponseEnvelope {
	return ResponseEnvelope{
		Version: "1.0",
		Response: Response{
			OutputSpeech: plainSpeech(text),
			Reprompt:     &Reprompt{OutputSpeech: *plainSpeech(reprompt)},
		},
	}
}

// WithTrend attaches a RenderDocument directive carrying the trend
// payload as the datasource of the embedded document.
func WithTrend(resp ResponseEnvelope, document json.RawMessage, payload any) ResponseEnvelope {
	resp.Response.Directives = append(resp.Response.Directives, Directive{
		Type:     "Alexa.Presentation.APL.RenderDocument",
		Token:    trendToken,
		Document: document,
		Datasources: map[string]any{
			"trendData": payload,
		},
	})
	return resp
}
