package model

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrTimeout          = errors.New("timeout")
	ErrNotImplemented   = errors.New("not implemented")
	ErrConflicts        = errors.New("deployment plan has conflicts")
	ErrDeploymentFailed = errors.New("deployment plan failed")
)
