// internal/common/supabase/bookings.go
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"parkhub-notifier/internal/common/errors"
)

// bookingSelect embeds the slot and its layout in a single read, following
// the booking -> parking_slots -> parking_layouts belongs-to chain.
const bookingSelect = "*,parking_slots(slot_label,parking_layouts(name,location))"

// Layout is the parking layout a slot belongs to.
type Layout struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Slot is the parking slot a booking belongs to. The layout link may be
// broken, in which case ParkingLayout is nil.
type Slot struct {
	SlotLabel     string  `json:"slot_label"`
	ParkingLayout *Layout `json:"parking_layouts"`
}

// Booking is the stored booking row joined with its optional slot chain.
type Booking struct {
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
	ParkingSlot      *Slot  `json:"parking_slots"`
}

// FetchBooking reads a single booking with its related slot and layout.
// An empty result set is reported as BOOKING_NOT_FOUND; a broken slot or
// layout link is not an error and leaves the pointer fields nil.
func (c *Client) FetchBooking(ctx context.Context, bookingID string) (*Booking, error) {
	query := url.Values{}
	query.Set("id", "eq."+bookingID)
	query.Set("select", bookingSelect)

	reqURL := fmt.Sprintf("%s/bookings?%s", c.restURL, query.Encode())

	req, err := c.newGetRequest(ctx, reqURL)
	if err != nil {
		return nil, errors.NewStorageQueryFailedError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewStorageQueryFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.NewStorageQueryFailedError(
			fmt.Errorf("bookings query returned status %d: %s", resp.StatusCode, string(body)))
	}

	var bookings []Booking
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		return nil, errors.NewStorageQueryFailedError(fmt.Errorf("decode bookings response: %w", err))
	}

	if len(bookings) == 0 {
		return nil, errors.NewBookingNotFoundError(bookingID)
	}

	return &bookings[0], nil
}
