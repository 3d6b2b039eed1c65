package request

import (
	"math/rand/v2"
	"strconv"
)

// NewRequestID mints a random 6-digit request id. Minted once per
// conversational session; collisions are possible but the id space is
// accepted as-is for the call-center flow.
func NewRequestID() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}
