package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateIdentity  = errors.New("email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrMissingField       = errors.New("please fill in all required fields")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidScore       = errors.New("rating must be between 1 and 5")
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidRank        = errors.New("invalid rank")
	ErrNoPermission       = errors.New("no permission")
	ErrUsernameTaken      = errors.New("username already taken")
)

// CooldownError 防刷窗口未过，携带剩余等待时间
type CooldownError struct {
	Scope     string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	secs := int64(e.Remaining.Seconds())
	if e.Remaining > time.Duration(secs)*time.Second {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("please wait %d seconds before trying again", secs)
}

// RemainingSeconds 向上取整
func (e *CooldownError) RemainingSeconds() int64 {
	secs := int64(e.Remaining.Seconds())
	if e.Remaining > time.Duration(secs)*time.Second {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return secs
}
