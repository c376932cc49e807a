// Package logging gives the gLog loggers discarding writers until the
// command line sets them up, so library callers never log through a nil
// logger. Import it for its side effect.
package logging

import (
	"io"

	"github.com/paulmatencio/s3c/gLog"
)

func init() {
	discardUnset()
}

// discardUnset points every gLog logger that is still unset at io.Discard.
// Loggers already configured with gLog.Init or gLog.InitLog are kept.
func discardUnset() {
	if gLog.Info != nil && gLog.Warning != nil && gLog.Error != nil &&
		gLog.Fatal != nil && gLog.Trace != nil && gLog.Debug != nil {
		return
	}
	gLog.Init(io.Discard, io.Discard, io.Discard, io.Discard, io.Discard, io.Discard)
}
