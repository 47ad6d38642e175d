package model

import "errors"

// ErrUnmatchedInstruction is returned when a match.PatternMatch names an
// instruction/pattern pair the target machine does not register.
var ErrUnmatchedInstruction = errors.New("model: match references unknown instruction or pattern")

// ErrMissingEntryBlock is returned when Build needs the function's entry
// block (for the model's entry-block field) but the op-structure has none.
var ErrMissingEntryBlock = errors.New("model: function op-structure has no entry block")
