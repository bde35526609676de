package agent

import "errors"

// ErrIterationLimit is returned when a single user input exhausts the
// model-call budget without producing a plain assistant reply.
var ErrIterationLimit = errors.New("agent: iteration limit reached without a final response")
