package task

import "errors"

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrAttachmentNotFound  = errors.New("attachment not found")
	ErrTooManyAttachments  = errors.New("a task accepts at most 10 attachments per upload")
	ErrFileTypeNotAllowed  = errors.New("only jpeg, png, pdf, ppt and pptx files are allowed")
	ErrFileSizeExceeds     = errors.New("attachment exceeds 25MB")
	ErrProjectDoesNotExist = errors.New("project does not exist")
)
