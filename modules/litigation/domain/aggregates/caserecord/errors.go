package caserecord

import "github.com/go-faster/errors"

var (
	ErrNotFound      = errors.New("case not found")
	ErrCaseIDTaken   = errors.New("case id already taken")
	ErrPartyNotFound = errors.New("party not found")
)
