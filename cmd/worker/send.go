package main

import (
	"errors"
	"math/rand"
)

var errSendFailed = errors.New("mock send failed")

// Mock sender: 90% chance of success
func mockSend(msg string) bool {
	return rand.Intn(100) < 90
}
