// Package bridge carries typed envelopes between the chat surface and the
// FAQ frame. The two sides share no calls or memory; everything crosses an
// asynchronous broadcast bus as JSON payloads.
package bridge

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Envelope types understood on both ends of the boundary. Payloads with
// any other type value are ignored without error so either side can be
// upgraded independently.
const (
	// TypeScrollToFAQ asks the frame to navigate to the entry a citation
	// points at. Index is the 0-based rank of the cited match.
	TypeScrollToFAQ = "scrollToFAQ"

	// TypeHighlightAnswer asks the frame to emphasize matching content.
	// Reserved for debug tooling.
	TypeHighlightAnswer = "highlightAnswer"
)

// Envelope is the wire shape crossing the frame boundary.
type Envelope struct {
	Type           string `json:"type"`
	Index          int    `json:"index"`
	ClassName      string `json:"className,omitempty"`
	HighlightColor string `json:"highlightColor,omitempty"`
}

// Marshal produces the JSON wire form.
func (e Envelope) Marshal() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		// Envelope has no unmarshalable fields; kept for interface safety.
		return []byte("{}")
	}
	return data
}

// ParseEnvelope validates a raw payload received from the bus. It returns
// ok=false for anything that is not a JSON object carrying a recognized
// string type with the fields that type requires; such payloads are
// silently dropped by callers.
func ParseEnvelope(raw []byte) (Envelope, bool) {
	if !gjson.ValidBytes(raw) {
		return Envelope{}, false
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Envelope{}, false
	}

	typ := root.Get("type")
	if typ.Type != gjson.String {
		return Envelope{}, false
	}

	switch typ.String() {
	case TypeScrollToFAQ:
		index := root.Get("index")
		if index.Type != gjson.Number {
			return Envelope{}, false
		}
		return Envelope{Type: TypeScrollToFAQ, Index: int(index.Int())}, true

	case TypeHighlightAnswer:
		return Envelope{
			Type:           TypeHighlightAnswer,
			ClassName:      root.Get("className").String(),
			HighlightColor: root.Get("highlightColor").String(),
		}, true

	default:
		return Envelope{}, false
	}
}
