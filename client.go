package paramcodec

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/ultram4rine/go-paramcodec/pcbase64"
)

// Config is the configuration of a Client.
type Config struct {
	Profile

	// Now returns the time used for envelope timestamps.
	Now func() time.Time

	Logger *logrus.Entry
}

// SetDefaults sets sensible values for unset fields in config.
func (c *Config) SetDefaults() {
	if c.ClientType == "" {
		c.ClientType = "WEB"
	}
	if c.Digest.CharSize == 0 {
		c.Digest.CharSize = 8
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
}

// Client encodes requests and decodes responses for one API profile.
// A Client is safe for concurrent use.
type Client struct {
	config   Config
	request  *Pipeline
	response *Pipeline
}

// NewClient builds the request and response pipelines of config.
func NewClient(config *Config) (*Client, error) {
	conf := *config
	conf.SetDefaults()

	log := conf.Logger.WithField("profile", conf.Name)

	reqConf := conf.Request
	reqConf.Logger = log.WithField("pipeline", "request")
	request, err := NewPipeline(reqConf)
	if err != nil {
		return nil, fmt.Errorf("paramcodec: request pipeline: %w", err)
	}

	respConf := conf.Response
	respConf.Logger = log.WithField("pipeline", "response")
	response, err := NewPipeline(respConf)
	if err != nil {
		return nil, fmt.Errorf("paramcodec: response pipeline: %w", err)
	}

	return &Client{config: conf, request: request, response: response}, nil
}

// NewProfileClient returns a Client for the named built-in profile.
func NewProfileClient(name string) (*Client, error) {
	p, err := LookupProfile(name)
	if err != nil {
		return nil, err
	}
	return NewClient(&Config{Profile: *p})
}

// Request returns the request pipeline.
func (c *Client) Request() *Pipeline { return c.request }

// Response returns the response pipeline.
func (c *Client) Response() *Pipeline { return c.response }

// Envelope builds and signs the envelope EncodeParam would send.
func (c *Client) Envelope(method string, payload interface{}) (*Envelope, error) {
	ts := c.config.Now().UnixNano() / int64(time.Millisecond)
	e, err := NewEnvelope(c.config.AppID, method, ts, c.config.ClientType, payload)
	if err != nil {
		return nil, fmt.Errorf("paramcodec: serializing payload: %w", err)
	}
	e.Sign(c.config.Digest)
	return e, nil
}

// EncodeParam signs payload into an envelope and runs the JSON through
// the request pipeline. The result is the request parameter value.
func (c *Client) EncodeParam(method string, payload interface{}) (string, error) {
	e, err := c.Envelope(method, payload)
	if err != nil {
		return "", err
	}
	data, err := e.Marshal()
	if err != nil {
		return "", err
	}
	return c.request.Encode(string(data))
}

// EncodeValue runs a bare value through the request pipeline, without
// an envelope.
func (c *Client) EncodeValue(text string) (string, error) {
	return c.request.Encode(text)
}

// DecodeResult undoes the response pipeline on a server response.
func (c *Client) DecodeResult(text string) (string, error) {
	out, err := c.response.Decode(text)
	if err != nil {
		return "", err
	}
	if c.config.ReencodeResult {
		out = pcbase64.EncodeString(out)
	}
	return out, nil
}

// DecodeParam undoes the request pipeline, recovering what EncodeParam
// or EncodeValue was given.
func (c *Client) DecodeParam(text string) (string, error) {
	return c.request.Decode(text)
}

// EncodeSecret returns the hex digest of the app id followed by args,
// with all whitespace removed first.
func (c *Client) EncodeSecret(args ...string) string {
	s := c.config.AppID + strings.Join(args, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return c.config.Digest.Hex(s)
}
