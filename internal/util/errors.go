package util

import "errors"

var (
	ErrLearningPathNotFound = errors.New("learning path not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrLectureNotFound      = errors.New("lecture not found")
	ErrMappingNotFound      = errors.New("no learning paths mapped to this institute and batch")
	ErrInvalidIconExt       = errors.New("unsupported file format")
)
