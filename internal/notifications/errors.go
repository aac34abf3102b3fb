package notifications

import "errors"

var (
	// ErrSendFailed возвращается, когда письмо не удалось отправить.
	// Отправка уведомлений не влияет на судьбу бронирования: ошибка
	// логируется и учитывается в метриках, но наружу не всплывает
	ErrSendFailed = errors.New("notifications: failed to send email")

	// ErrBuildEmail возвращается при ошибке рендеринга шаблона письма
	ErrBuildEmail = errors.New("notifications: failed to build email body")
)
