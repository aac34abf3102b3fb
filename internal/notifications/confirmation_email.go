package notifications

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/avtoblesk/booking-service/internal/domain"
)

const bookingConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Здравствуйте, {{.CustomerName}}!</p>
  <p>Ваша запись в студию детейлинга «АвтоБлеск» подтверждена.</p>
  <ul>
    <li>Услуга: {{.ServiceName}}</li>
    <li>Дата: {{.Date}}</li>
    <li>Время: {{.StartTime}} – {{.EndTime}}</li>
    <li>Длительность: {{.DurationMinutes}} мин.</li>
    <li>Стоимость: {{.TotalPrice}} ₽</li>
    <li>Номер записи: {{.Reference}}</li>
  </ul>
  <p>Пожалуйста, приезжайте за 10 минут до начала. Если ваши планы
  изменятся, отмените запись по номеру записи.</p>
  <p>До встречи!<br>Команда «АвтоБлеск»</p>
</body>
</html>`

var bookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(bookingConfirmationTemplate))

type bookingConfirmationData struct {
	CustomerName    string
	ServiceName     string
	Date            string
	StartTime       string
	EndTime         string
	DurationMinutes int
	TotalPrice      string
	Reference       string
}

func buildBookingConfirmationHTML(booking *domain.Booking) (string, error) {
	endTime, err := booking.EndTime()
	if err != nil {
		return "", fmt.Errorf("%w: compute end time: %v", ErrBuildEmail, err)
	}

	data := bookingConfirmationData{
		CustomerName:    booking.CustomerName,
		ServiceName:     booking.ServiceName,
		Date:            booking.BookingDate.Format("02.01.2006"),
		StartTime:       booking.StartTime.String(),
		EndTime:         endTime.String(),
		DurationMinutes: booking.DurationMinutes,
		TotalPrice:      fmt.Sprintf("%.0f", booking.TotalPrice),
		Reference:       booking.Reference.String(),
	}

	var buf bytes.Buffer
	if err := bookingConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: render template: %v", ErrBuildEmail, err)
	}

	return buf.String(), nil
}
