package paramcodec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultram4rine/go-paramcodec/pcmode"
)

func legacyRequest(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(PipelineConfig{Stages: "32223", DES: responseDES})
	require.NoError(t, err)
	return p
}

func TestPipelineKnownAnswers(t *testing.T) {
	p := legacyRequest(t)

	tests := []struct {
		in, want string
	}{
		{"北京", "M1VZU2hIMWk2SnVYdlVGaE9YOUpNUHp2SEJVUk12NDV4Z0VhSUtpVXA0Zk5VbUk5aUZqWmoyVG1vL0Y2UjEwVQ=="},
		{"GETDETAIL", "OTJGNWtySDFqdmkwdE5Pem9wcmo0Ui9hczVNbGdka0c2SGFUSExnZHdlS092ZGQybXpiQ3J5MUcvdHYzNmlkTA=="},
	}
	for _, tt := range tests {
		got, err := p.Encode(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Encode(%q)", tt.in)

		back, err := p.Decode(got)
		require.NoError(t, err)
		assert.Equal(t, tt.in, back)
	}
}

func TestPipelineRoundTrip(t *testing.T) {
	configs := map[string]PipelineConfig{
		"aes":     {Stages: "1", AES: clientAES},
		"b64-aes": {Stages: "31", AES: clientAES},
		"mixed":   {Stages: "312", AES: serverAES, DES: pageDES},
		"legacy":  {Stages: "32223", DES: responseDES},
		"3des": {Stages: "343", TripleDES: &CipherKeys{
			Key: KeySpec{Secret: "triple", Offset: 0, Length: 24},
			IV:  KeySpec{Secret: "iv", Offset: 8, Length: 8},
		}},
		"strict":   {Stages: "121", AES: clientAES, DES: pageDES, StrictPadding: true},
		"base64x3": {Stages: "333"},
		"empty":    {Stages: ""},
	}
	inputs := []string{"", "a", "1234567", "12345678", "0123456789abcdef", `{"a":1}`, "空气质量 AQI ✓", strings.Repeat("ab", 100)}

	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			p, err := NewPipeline(config)
			require.NoError(t, err)
			for _, in := range inputs {
				enc, err := p.Encode(in)
				require.NoError(t, err)
				dec, err := p.Decode(enc)
				require.NoError(t, err)
				assert.Equal(t, in, dec, "roundtrip(%s): %q", p, in)
			}
		})
	}
}

func TestPipelineMissingKey(t *testing.T) {
	_, err := NewPipeline(PipelineConfig{Stages: "32223"})
	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.Contains(t, err.Error(), "des")

	_, err = NewPipeline(PipelineConfig{Stages: "1", DES: responseDES})
	assert.True(t, errors.Is(err, ErrMissingKey))

	// Keys for stages not used are ignored.
	_, err = NewPipeline(PipelineConfig{Stages: "3", AES: clientAES, DES: responseDES})
	assert.NoError(t, err)
}

func TestPipelineConstructionErrors(t *testing.T) {
	_, err := NewPipeline(PipelineConfig{Stages: "19"})
	assert.True(t, errors.Is(err, ErrUnknownStage))

	_, err = NewPipeline(PipelineConfig{Stages: "2", DES: &CipherKeys{
		Key: KeySpec{Secret: "k", Length: 4},
		IV:  KeySpec{Secret: "v", Length: 8},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage des")

	_, err = NewPipeline(PipelineConfig{Stages: "1", AES: &CipherKeys{
		Key: KeySpec{Secret: "k", Offset: 30, Length: 16},
		IV:  KeySpec{Secret: "v", Length: 16},
	}})
	assert.True(t, errors.Is(err, ErrBadKeySpec))
}

func TestPipelineAccessors(t *testing.T) {
	p := legacyRequest(t)
	assert.Equal(t, "base64>des>des>des>base64", p.String())
	assert.Equal(t, []int{STAGE_BASE64, STAGE_DES, STAGE_DES, STAGE_DES, STAGE_BASE64}, p.Stages())
	assert.True(t, p.Uses(STAGE_DES))
	assert.False(t, p.Uses(STAGE_AES))

	// Stages returns a copy.
	s := p.Stages()
	s[0] = STAGE_AES
	assert.Equal(t, STAGE_BASE64, p.Stages()[0])
}

func TestPipelineDecodeErrors(t *testing.T) {
	p, err := NewPipeline(PipelineConfig{Stages: "23", DES: pageDES})
	require.NoError(t, err)

	enc, err := p.Encode("\xff")
	require.NoError(t, err)
	_, err = p.Decode(enc)
	assert.True(t, errors.Is(err, ErrMalformedUTF8))
	assert.Contains(t, err.Error(), "decode stage")
}

func TestPipelineStrictPadding(t *testing.T) {
	// Plain DES text whose last block does not end in valid padding.
	raw, err := NewPipeline(PipelineConfig{Stages: "2", DES: pageDES})
	require.NoError(t, err)
	strict, err := NewPipeline(PipelineConfig{Stages: "2", DES: pageDES, StrictPadding: true})
	require.NoError(t, err)

	enc, err := raw.Encode("abcdefg")
	require.NoError(t, err)
	_, err = strict.Decode(enc)
	require.NoError(t, err)

	key, iv, err := pageDES.derive()
	require.NoError(t, err)
	c, err := newDESCBCStage(key, iv, pcmode.NoPadding)
	require.NoError(t, err)
	unpadded, err := c.encode("abcdefg\x03")
	require.NoError(t, err)

	_, err = strict.Decode(unpadded)
	assert.True(t, errors.Is(err, pcmode.ErrInvalidPadding))

	got, err := raw.Decode(unpadded)
	require.NoError(t, err)
	assert.Equal(t, "abcde", got)
}

func TestPipelineTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	p := legacyRequest(t)
	p.SetLogger(logrus.NewEntry(logger))

	_, err := p.Encode("x")
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 5, strings.Count(out, "Stage applied"))
	assert.Contains(t, out, "stage=des")
	assert.Contains(t, out, "direction=encode")

	buf.Reset()
	logger.SetLevel(logrus.InfoLevel)
	_, err = p.Encode("x")
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
