package latex

import "errors"

// ErrUnsupportedNode reports a parsed element that has no render rule.
var ErrUnsupportedNode = errors.New("unsupported markdown node")
