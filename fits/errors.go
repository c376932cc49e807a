package fits

import (
	"errors"
	"fmt"
)

var (
	ErrDecode              = errors.New("fits: card is not valid text")
	ErrTruncatedHeader     = errors.New("fits: header ends before END card")
	ErrTruncatedData       = errors.New("fits: data shorter than declared payload")
	ErrUnsupportedEncoding = errors.New("fits: unsupported BITPIX")
)

// MissingKeywordError reports a required keyword absent from the header.
type MissingKeywordError struct {
	Key string
}

func (e *MissingKeywordError) Error() string {
	return fmt.Sprintf("fits: missing keyword %s", e.Key)
}

// MalformedValueError reports a keyword whose value could not be
// interpreted.
type MalformedValueError struct {
	Key string
	Raw string
	Err error
}

func (e *MalformedValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fits: malformed value %q for %s: %v", e.Raw, e.Key, e.Err)
	}
	return fmt.Sprintf("fits: malformed value %q for %s", e.Raw, e.Key)
}

func (e *MalformedValueError) Unwrap() error {
	return e.Err
}
