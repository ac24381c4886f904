package paramcodec

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Envelope is the signed request message. Fields marshal in declaration
// order.
type Envelope struct {
	AppID      string          `json:"appId"`
	Method     string          `json:"method"`
	Timestamp  int64           `json:"timestamp"`
	ClientType string          `json:"clienttype"`
	Object     json.RawMessage `json:"object"`
	Secret     string          `json:"secret"`
}

// NewEnvelope builds an envelope for payload. The payload is serialized
// as compact JSON with map keys sorted; a json.RawMessage payload is only
// compacted. The envelope is not signed yet.
func NewEnvelope(appID, method string, timestamp int64, clientType string, payload interface{}) (*Envelope, error) {
	object, err := compactJSON(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		AppID:      appID,
		Method:     method,
		Timestamp:  timestamp,
		ClientType: clientType,
		Object:     object,
	}, nil
}

// SigningText is the text digested into the secret:
// appId, method, timestamp, client type and the object JSON, concatenated.
func (e *Envelope) SigningText() string {
	var b bytes.Buffer
	b.WriteString(e.AppID)
	b.WriteString(e.Method)
	b.WriteString(strconv.FormatInt(e.Timestamp, 10))
	b.WriteString(e.ClientType)
	b.Write(e.Object)
	return b.String()
}

// Sign sets the secret to the hex digest of SigningText.
func (e *Envelope) Sign(opts DigestOptions) {
	e.Secret = opts.Hex(e.SigningText())
}

// Verify reports whether the secret matches the rest of the envelope.
func (e *Envelope) Verify(opts DigestOptions) bool {
	return e.Secret == opts.Hex(e.SigningText())
}

// Marshal returns the envelope as compact JSON.
func (e *Envelope) Marshal() ([]byte, error) {
	return compactJSON(e)
}

// ParseEnvelope reads an envelope produced by Marshal.
func ParseEnvelope(data []byte) (*Envelope, error) {
	e := new(Envelope)
	if err := json.Unmarshal(data, e); err != nil {
		return nil, err
	}
	return e, nil
}

// compactJSON marshals v without HTML escaping and without the trailing
// newline json.Encoder adds.
func compactJSON(v interface{}) ([]byte, error) {
	if raw, ok := v.(json.RawMessage); ok {
		var b bytes.Buffer
		if err := json.Compact(&b, raw); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	}

	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}
