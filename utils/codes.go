package utils

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

const loadCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	codeMu   sync.Mutex
	codeRand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
)

// NewLoadCode returns a human-facing load reference such as LDK7Q2ZP.
func NewLoadCode() string {
	b := make([]byte, 8)
	b[0], b[1] = 'L', 'D'

	codeMu.Lock()
	for i := 2; i < len(b); i++ {
		b[i] = loadCodeAlphabet[codeRand.Intn(len(loadCodeAlphabet))]
	}
	codeMu.Unlock()

	return string(b)
}
