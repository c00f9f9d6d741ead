package glyphs

import (
	"fmt"

	"github.com/classicadventures/mixcreator/util"
)

// ConfigError reports an invalid glyph or encoding configuration.
// It unwraps to util.ErrConfiguration.
type ConfigError struct {
	Source string // file name, or font name for planner errors
	Line   int    // 1-based, 0 when not tied to a line
	Msg    string
	Err    error
}

func (e *ConfigError) Error() string {
	where := e.Source
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	if where == "" {
		where = "glyph configuration"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", where, e.Msg)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{util.ErrConfiguration}
	}
	return []error{util.ErrConfiguration, e.Err}
}
