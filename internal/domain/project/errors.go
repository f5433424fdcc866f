package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidManager  = errors.New("manager does not exist")
	ErrInvalidTeam     = errors.New("team contains unknown users")
)
