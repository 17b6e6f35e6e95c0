// internal/workers/booking/send-approval-email/models.go
package sendapprovalemail

// Input is the database webhook payload delivered when a booking row changes.
// The record snapshot is immutable once received.
type Input struct {
	Type      string    `json:"type"`
	Table     string    `json:"table"`
	Schema    string    `json:"schema"`
	Record    Record    `json:"record"`
	OldRecord OldRecord `json:"old_record"`
}

// Record is the booking snapshot captured at event time.
type Record struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	UserName         string `json:"user_name"`
	VehicleNumber    string `json:"vehicle_number"`
	VehicleType      string `json:"vehicle_type"`
	Duration         int    `json:"duration"`
	Status           string `json:"status"`
	BookingStartTime string `json:"booking_start_time"`
	BookingEndTime   string `json:"booking_end_time"`
	SlotID           string `json:"slot_id"`
}

type OldRecord struct {
	Status string `json:"status"`
}

// Contact is the resolved recipient address for a user.
type Contact struct {
	Email string `json:"email"`
}

// Payload is one rendered notification, built once per accepted event.
type Payload struct {
	Subject   string
	Preview   string
	Body      string
	Recipient Contact
}

// Output mirrors the webhook response body.
type Output struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Recipient      string `json:"recipient,omitempty"`
	BookingID      string `json:"bookingId,omitempty"`
	NotificationID string `json:"notificationId,omitempty"`
}

// DispatchResult is the structured outcome of one delivery attempt.
type DispatchResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Recipient      string `json:"recipient"`
	BookingID      string `json:"bookingId"`
	NotificationID string `json:"notificationId"`
}
