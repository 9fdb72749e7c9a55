package skills

import "errors"

var (
	// ErrInternal возвращается при ошибке чтения компетенций
	ErrInternal = errors.New("skills.service: internal error")
)
