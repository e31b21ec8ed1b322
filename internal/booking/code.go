package booking

import "crypto/rand"

// CodeLength is the length of the public share code printed on every
// booking.
const CodeLength = 6

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CodeGenerator produces short share codes for new bookings.  Generated
// codes are random, not guaranteed unique; the caller retries when the
// database reports a collision on the unique code column.
type CodeGenerator interface {
	Generate() (string, error)
}

// ShortCode generates 6-character alphanumeric codes from a
// cryptographically secure source.
type ShortCode struct{}

// Generate returns a fresh random code.
func (ShortCode) Generate() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
