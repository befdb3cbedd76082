package cart

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Customization is the free-form payload a shopper attaches to a tag, such
// as engraving text, contact numbers or a WhatsApp handle. Keys and nesting
// are not interpreted; two payloads are equal when their canonical encodings
// are equal.
type Customization map[string]any

// Fingerprint is the stable identity of a customization payload. Line items
// are keyed by (product id, fingerprint), so equal payloads always land on
// the same line regardless of key order in the incoming JSON.
type Fingerprint string

// EmptyFingerprint identifies a line item with no customization.
var EmptyFingerprint = ComputeFingerprint(nil)

// ComputeFingerprint canonicalizes the payload and encodes it. Nil and empty
// maps produce the same fingerprint. The payload comes from decoded JSON, so
// a value that cannot be re-encoded is a programming error and panics.
func ComputeFingerprint(c Customization) Fingerprint {
	if c == nil {
		c = Customization{}
	}
	encoded, err := json.Marshal(c)
	if err != nil {
		panic(fmt.Sprintf("cart: customization not serializable: %v", err))
	}
	return Fingerprint(base64.StdEncoding.EncodeToString(encoded))
}

// IsEmpty reports whether the fingerprint denotes an uncustomized item.
func (f Fingerprint) IsEmpty() bool {
	return f == EmptyFingerprint
}

func (f Fingerprint) String() string {
	return string(f)
}
