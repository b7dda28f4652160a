package models

// ErrorKind classifies why a refresh cycle did not produce an agenda
type ErrorKind string

const (
	ErrNone          ErrorKind = ""
	ErrNotConfigured ErrorKind = "NotConfigured" // credentials missing
	ErrUnknown       ErrorKind = "Unknown"       // undecodable output or failed command
	ErrToolMissing   ErrorKind = "ToolMissing"   // ncalendar is not installed
)
