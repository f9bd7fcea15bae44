package utils

import (
	"crypto/rand"
	"fmt"
)

const randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiasedByte is the largest multiple of len(randomAlphabet) that
// fits in a byte. Bytes at or above it are discarded so every alphabet
// character is equally likely.
const maxUnbiasedByte = 256 - 256%len(randomAlphabet)

// RandomString generates a random string of exactly length characters
// drawn from a lowercase alphanumeric alphabet, using crypto/rand so
// the result is unpredictable enough to serve as a credential.
func RandomString(length int) (string, error) {
	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiasedByte {
				continue
			}
			out = append(out, randomAlphabet[int(b)%len(randomAlphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
