package paramcodec

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ultram4rine/go-paramcodec/pcmode"
)

// PipelineConfig describes one encode/decode pipeline: the stage string
// and the key material of every keyed stage it uses.
type PipelineConfig struct {
	Stages    string      `yaml:"stages"`
	AES       *CipherKeys `yaml:"aes,omitempty"`
	DES       *CipherKeys `yaml:"des,omitempty"`
	TripleDES *CipherKeys `yaml:"3des,omitempty"`

	// StrictPadding makes cipher stages reject malformed PKCS#7 padding
	// instead of trusting the last byte.
	StrictPadding bool `yaml:"strict_padding,omitempty"`

	Logger *logrus.Entry `yaml:"-"`
}

func (c *PipelineConfig) keys(stage int) *CipherKeys {
	switch stage {
	case STAGE_AES:
		return c.AES
	case STAGE_DES:
		return c.DES
	case STAGE_3DES:
		return c.TripleDES
	}
	return nil
}

// Pipeline applies its stages left to right on Encode and undoes them
// right to left on Decode. It holds no per-call state and may be used
// from several goroutines.
type Pipeline struct {
	spec    string
	stages  []int
	mask    Bitmask
	ciphers map[int]stageCipher
	log     *logrus.Entry
}

// NewPipeline parses config.Stages and builds a cipher for every stage
// that occurs in it. Key material for stages that do not occur is
// ignored.
func NewPipeline(config PipelineConfig) (*Pipeline, error) {
	stages, err := ParseStages(config.Stages)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		spec:    config.Stages,
		stages:  stages,
		mask:    *CreateStageMask(stages...),
		ciphers: make(map[int]stageCipher, len(StageNames)),
		log:     config.Logger,
	}
	if p.log == nil {
		p.log = logrus.NewEntry(logrus.StandardLogger())
	}

	padding := pcmode.Pkcs7
	if config.StrictPadding {
		padding = pcmode.Pkcs7Strict
	}

	keyed := p.mask
	if keyed.hasFlag(STAGE_BASE64) {
		p.ciphers[STAGE_BASE64] = base64Stage{}
		keyed.removeFlag(STAGE_BASE64)
	}
	for _, stage := range []int{STAGE_AES, STAGE_DES, STAGE_3DES} {
		if !keyed.hasFlag(stage) {
			continue
		}
		keys := config.keys(stage)
		if keys == nil {
			return nil, missingKeyError(stage)
		}
		c, err := newStageCipher(stage, keys, padding)
		if err != nil {
			return nil, fmt.Errorf("paramcodec: stage %s: %w", StageNames[stage], err)
		}
		p.ciphers[stage] = c
	}

	return p, nil
}

// SetLogger replaces the logger used for stage tracing. It must not be
// called while the pipeline is in use.
func (p *Pipeline) SetLogger(log *logrus.Entry) {
	p.log = log
}

// Stages returns the stage ids in encode order.
func (p *Pipeline) Stages() []int {
	return append([]int(nil), p.stages...)
}

// Uses reports whether stage occurs in the pipeline.
func (p *Pipeline) Uses(stage int) bool {
	return p.mask.hasFlag(stage)
}

// String returns the stage names in encode order, e.g. "base64>des>base64".
func (p *Pipeline) String() string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = StageNames[s]
	}
	return strings.Join(names, ">")
}

// Encode runs text through every stage in order.
func (p *Pipeline) Encode(text string) (string, error) {
	for i, stage := range p.stages {
		out, err := p.ciphers[stage].encode(text)
		if err != nil {
			return "", fmt.Errorf("paramcodec: encode stage %d (%s): %w", i, StageNames[stage], err)
		}
		p.trace(stage, "encode", text, out)
		text = out
	}
	return text, nil
}

// Decode runs text through the inverse of every stage in reverse order.
func (p *Pipeline) Decode(text string) (string, error) {
	for i := len(p.stages) - 1; i >= 0; i-- {
		stage := p.stages[i]
		out, err := p.ciphers[stage].decode(text)
		if err != nil {
			return "", fmt.Errorf("paramcodec: decode stage %d (%s): %w", i, StageNames[stage], err)
		}
		p.trace(stage, "decode", text, out)
		text = out
	}
	return text, nil
}

// trace logs one stage transition. Only lengths are logged.
func (p *Pipeline) trace(stage int, direction, in, out string) {
	if !p.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	p.log.WithFields(logrus.Fields{
		"stage":     StageNames[stage],
		"direction": direction,
		"in_len":    len(in),
		"out_len":   len(out),
	}).Debugln("Stage applied")
}
