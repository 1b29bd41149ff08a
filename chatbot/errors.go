package chatbot

import "errors"

// ErrEmptyCompletion is returned when a model call succeeds but carries no
// text, which would otherwise store a blank assistant turn.
var ErrEmptyCompletion = errors.New("model returned an empty completion")
