// internal/workers/booking/send-approval-email/filter.go
package sendapprovalemail

// Booking status values as stored. Statuses are compared as opaque values;
// anything outside this set simply never matches the transition.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
)

// ShouldNotify reports whether the event is the one transition that warrants
// a confirmation email: pending -> approved. Every other transition,
// including approved -> approved and events with missing statuses, is a
// silent no-op.
func ShouldNotify(input *Input) bool {
	return input.OldRecord.Status == StatusPending && input.Record.Status == StatusApproved
}
