package ledger

import "errors"

var ErrMalformedResponse = errors.New("malformed ledger response")
