package blockedperiod

import "errors"

var (
	// ErrRelationMissing возвращается, когда таблица периодов недоступности отсутствует в схеме
	ErrRelationMissing = errors.New("blockedperiod.repository: relation does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockedperiod.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockedperiod.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockedperiod.repository: failed to scan row")
)
