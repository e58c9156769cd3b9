package domain

import "errors"

var (
	ErrMissingSignature = errors.New("missing timestamp or signature")
	ErrExpiredTimestamp = errors.New("request timestamp outside tolerance window")
	ErrInvalidSignature = errors.New("signature mismatch")
	ErrCommandNotFound  = errors.New("command not found")
)
