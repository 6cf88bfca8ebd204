package models

// Envelope carries an encrypted payload as {"data": "<ciphertext>"}. It is
// built right before a call and unwrapped right after; it is never stored.
type Envelope struct {
	Data string `json:"data"`
}
