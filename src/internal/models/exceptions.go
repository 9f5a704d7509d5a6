package models

import "errors"

var (
	ErrRedisGet = errors.New("redis get error")
	ErrRedisSet = errors.New("redis set error")
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

var (
	ErrNoFilesProvided      = errors.New("no files selected")
	ErrUnsafeFilename       = errors.New("unsafe filename")
	ErrUploadDirUnavailable = errors.New("upload directory unavailable")
)
