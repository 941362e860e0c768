package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("this email is already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidOTP           = errors.New("invalid code")
	ErrExpiredOTP           = errors.New("code has expired, please request a new one")
	ErrUpstreamAI           = errors.New("AI provider request failed")
	ErrQuizGenerationFailed = errors.New("could not generate quiz questions")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionNotActive     = errors.New("session is not in an active round")
	ErrPlanNotFound         = errors.New("study plan not found")
	ErrNoReadableText       = errors.New("no readable text could be extracted")
)
