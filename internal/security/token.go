// Package security holds small crypto helpers shared by the web handlers.
package security

import (
	"crypto/rand"
	"errors"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiasedByte is the largest multiple of len(tokenAlphabet) that fits in a byte.
const maxUnbiasedByte = 256 - 256%len(tokenAlphabet)

var ErrInvalidTokenLength = errors.New("token length must be positive")

// RandomToken returns a lowercase alphanumeric token read from crypto/rand.
// Bytes that would bias the alphabet are rejected.
func RandomToken(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidTokenLength
	}

	token := make([]byte, 0, length)
	buffer := make([]byte, length+length/4+1)
	for len(token) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, value := range buffer {
			if int(value) >= maxUnbiasedByte {
				continue
			}
			token = append(token, tokenAlphabet[int(value)%len(tokenAlphabet)])
			if len(token) == length {
				break
			}
		}
	}
	return string(token), nil
}
