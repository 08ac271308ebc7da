package async

import "errors"

var (
	ErrTimeout        = errors.New("async: timed out waiting for completion")
	ErrNoPromises     = errors.New("async: no promises provided")
	ErrUnexpectedType = errors.New("async: completion value has unexpected type")
)
