// Package utils holds small id helpers.
package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet string = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	length   int    = 22
)

// NanoString returns a random alphanumeric string of n characters.
func NanoString(n int) string {
	return gonanoid.MustGenerate(alphabet, n)
}

// NanoID Nano ID
func NanoID() string {
	return gonanoid.MustGenerate(alphabet, length)
}

// RequestID returns a new API request id.
func RequestID() string {
	return "req_" + NanoString(16)
}
