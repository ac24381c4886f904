package paramcodec

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrMalformedUTF8 is returned when a cipher stage decrypts to bytes
	// that are not valid UTF-8. With the permissive padding this is the
	// usual symptom of a wrong key or a corrupted response.
	ErrMalformedUTF8 = errors.New("paramcodec: Malformed UTF-8 data")

	ErrUnknownStage   = errors.New("paramcodec: unknown stage")
	ErrUnknownProfile = errors.New("paramcodec: unknown profile")
	ErrMissingKey     = errors.New("paramcodec: missing key material")
	ErrBadKeySpec     = errors.New("paramcodec: bad key spec")
)

// unknownStageError results when a stage configuration string contains a
// tag that is not in the dispatch table.
func unknownStageError(tag rune) error {
	return fmt.Errorf("%w %q", ErrUnknownStage, tag)
}

// missingKeyError results when a pipeline uses a cipher stage without
// being given its key and IV.
func missingKeyError(stage int) error {
	return fmt.Errorf("%w for stage %s", ErrMissingKey, StageNames[stage])
}

// utf8String converts decrypted bytes back into text, failing the way a
// strict UTF-8 decoder does.
func utf8String(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrMalformedUTF8
	}
	return string(b), nil
}
