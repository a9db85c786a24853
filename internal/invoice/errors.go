package invoice

import "errors"

// ErrMissingIdentifier means no reservation id was supplied, so no
// document can be produced.
var ErrMissingIdentifier = errors.New("invoice: no document producible: missing reservation id")
