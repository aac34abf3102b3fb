package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	// или снята с продажи
	ErrServiceNotFound = errors.New("service not found in catalog")

	// ErrAddonNotFound возвращается, когда хотя бы одна из запрошенных
	// дополнительных опций не найдена в каталоге
	ErrAddonNotFound = errors.New("addon not found in catalog")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalog client: invalid response")
)
