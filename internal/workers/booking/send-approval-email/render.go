// internal/workers/booking/send-approval-email/render.go
package sendapprovalemail

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"parkhub-notifier/internal/common/supabase"
)

// placeholder stands in for any related field the join could not resolve.
const placeholder = "N/A"

const (
	dateLayout = "Monday, 2 January 2006"
	timeLayout = "03:04 PM"
)

// emailData carries the pre-formatted fields the body template embeds.
type emailData struct {
	UserName           string
	LayoutName         string
	LayoutLocation     string
	SlotLabel          string
	DateFormatted      string
	StartTimeFormatted string
	EndTimeFormatted   string
	DurationFormatted  string
	VehicleNumber      string
	VehicleType        string
	CurrentYear        int
}

var bodyTemplate = template.Must(template.New("approval-email").Parse(bodyTemplateHTML))

// Render produces the notification payload for an approved booking. It is
// deterministic for fixed inputs; now only feeds the footer year. A missing
// slot or layout renders as a placeholder, never as a failure.
func Render(record Record, booking *supabase.Booking, contact Contact, now time.Time) (*Payload, error) {
	slotLabel, layoutName, layoutLocation := relatedFields(booking)

	start, startOK := parseTimestamp(record.BookingStartTime)
	end, endOK := parseTimestamp(record.BookingEndTime)

	data := emailData{
		UserName:           orPlaceholder(record.UserName),
		LayoutName:         layoutName,
		LayoutLocation:     layoutLocation,
		SlotLabel:          slotLabel,
		DateFormatted:      placeholder,
		StartTimeFormatted: placeholder,
		EndTimeFormatted:   placeholder,
		DurationFormatted:  formatDuration(record.Duration),
		VehicleNumber:      orPlaceholder(record.VehicleNumber),
		VehicleType:        orPlaceholder(record.VehicleType),
		CurrentYear:        now.Year(),
	}
	if startOK {
		data.DateFormatted = start.Format(dateLayout)
		data.StartTimeFormatted = start.Format(timeLayout)
	}
	if endOK {
		data.EndTimeFormatted = end.Format(timeLayout)
	}

	var body strings.Builder
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("execute email template: %w", err)
	}

	return &Payload{
		Subject:   fmt.Sprintf("Parking Booking Confirmed - Spot %s", slotLabel),
		Preview:   fmt.Sprintf("Your parking at %s has been approved!", layoutName),
		Body:      body.String(),
		Recipient: contact,
	}, nil
}

// relatedFields walks the optional booking -> slot -> layout chain.
func relatedFields(booking *supabase.Booking) (slotLabel, layoutName, layoutLocation string) {
	slotLabel, layoutName, layoutLocation = placeholder, placeholder, placeholder

	if booking == nil || booking.ParkingSlot == nil {
		return
	}
	if booking.ParkingSlot.SlotLabel != "" {
		slotLabel = booking.ParkingSlot.SlotLabel
	}
	if layout := booking.ParkingSlot.ParkingLayout; layout != nil {
		if layout.Name != "" {
			layoutName = layout.Name
		}
		if layout.Location != "" {
			layoutLocation = layout.Location
		}
	}
	return
}

// formatDuration pluralizes the booked hours: "1 hour", otherwise "N hours".
func formatDuration(hours int) string {
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

func parseTimestamp(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func orPlaceholder(value string) string {
	if value == "" {
		return placeholder
	}
	return value
}

const bodyTemplateHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Parking Booking Confirmed</title>
    <style>
      body { font-family: 'Arial', sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: linear-gradient(135deg, #06d6a0 0%, #4a90e2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .header h1 { margin: 0; font-size: 28px; }
      .content { background: #ffffff; padding: 30px; border: 1px solid #e0e0e0; border-top: none; }
      .detail-box { background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0; }
      .detail-row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #e0e0e0; }
      .detail-row:last-child { border-bottom: none; }
      .label { font-weight: bold; color: #555; }
      .value { color: #333; text-align: right; }
      .success-badge { background: #06d6a0; color: white; padding: 10px 20px; border-radius: 20px; display: inline-block; font-weight: bold; margin: 20px 0; }
      .footer { text-align: center; padding: 20px; color: #999; font-size: 12px; }
      .important-note { background: #fff3cd; border-left: 4px solid #ffa726; padding: 15px; margin: 20px 0; }
    </style>
  </head>
  <body>
    <div class="header">
      <h1>&#x1F17F;&#xFE0F; Parking Booking Confirmed!</h1>
    </div>

    <div class="content">
      <p>Dear {{.UserName}},</p>

      <p>Great news! Your parking booking has been <strong>approved</strong> by the admin.</p>

      <div class="success-badge">&#x2713; BOOKING CONFIRMED</div>

      <div class="detail-box">
        <h3 style="margin-top: 0; color: #4a90e2;">Parking Details</h3>
        <div class="detail-row">
          <span class="label">Parking Name:</span>
          <span class="value">{{.LayoutName}}</span>
        </div>
        <div class="detail-row">
          <span class="label">Location:</span>
          <span class="value">{{.LayoutLocation}}</span>
        </div>
        <div class="detail-row">
          <span class="label">Spot Number:</span>
          <span class="value"><strong>{{.SlotLabel}}</strong></span>
        </div>
      </div>

      <div class="detail-box">
        <h3 style="margin-top: 0; color: #4a90e2;">Booking Information</h3>
        <div class="detail-row">
          <span class="label">Date:</span>
          <span class="value">{{.DateFormatted}}</span>
        </div>
        <div class="detail-row">
          <span class="label">Start Time:</span>
          <span class="value">{{.StartTimeFormatted}}</span>
        </div>
        <div class="detail-row">
          <span class="label">End Time:</span>
          <span class="value">{{.EndTimeFormatted}}</span>
        </div>
        <div class="detail-row">
          <span class="label">Duration:</span>
          <span class="value">{{.DurationFormatted}}</span>
        </div>
      </div>

      <div class="detail-box">
        <h3 style="margin-top: 0; color: #4a90e2;">Vehicle Details</h3>
        <div class="detail-row">
          <span class="label">Vehicle Number:</span>
          <span class="value"><strong>{{.VehicleNumber}}</strong></span>
        </div>
        <div class="detail-row">
          <span class="label">Vehicle Type:</span>
          <span class="value">{{.VehicleType}}</span>
        </div>
      </div>

      <div class="important-note">
        <strong>&#x26A0;&#xFE0F; Important:</strong> Please arrive on time and park only in your designated spot ({{.SlotLabel}}).
        Your booking will automatically expire at the end time.
      </div>

      <p>If you have any questions or need to modify your booking, please contact the parking administrator.</p>

      <p>Thank you for using Traffinity ParkHub!</p>
    </div>

    <div class="footer">
      <p>This is an automated email from Traffinity ParkHub Manager.</p>
      <p>&copy; {{.CurrentYear}} Traffinity. All rights reserved.</p>
    </div>
  </body>
</html>
`
