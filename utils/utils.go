package utils

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomAlphabetString returns a random lower case string of length n.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// TextToMd5Hash returns the hex encoded md5 digest of the input text.
func TextToMd5Hash(text string) (string, error) {
	h := md5.New()
	if _, err := h.Write([]byte(text)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
