package create_booking

import (
	"time"

	"github.com/avtoblesk/booking-service/internal/domain"
	createBooking "github.com/avtoblesk/booking-service/internal/usecase/create_booking"
	"github.com/avtoblesk/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	VehiclePlate  *string `json:"vehiclePlate,omitempty"`
	ServiceID     int64   `json:"serviceId"`
	AddonIDs      []int64 `json:"addonIds,omitempty"`
	BookingDate   string  `json:"bookingDate"` // "2026-06-02"
	StartTime     string  `json:"startTime"`   // "10:00"
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	VehiclePlate    *string `json:"vehiclePlate,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	TotalPrice      float64 `json:"totalPrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		VehiclePlate:  r.VehiclePlate,
		ServiceID:     r.ServiceID,
		AddonIDs:      r.AddonIDs,
		Date:          bookingDate,
		StartTime:     startTime,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference.String(),
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		VehiclePlate:    resp.VehiclePlate,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		TotalPrice:      resp.TotalPrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
