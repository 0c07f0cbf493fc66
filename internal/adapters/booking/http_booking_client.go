package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Lior1305/Planeet/internal/domain"
	"github.com/Lior1305/Planeet/internal/platform/obs"
)

// HTTPBookingClient implements BookingClient against the booking service.
// It submits a confirmed itinerary so each stop gets a reservation for
// the group.
type HTTPBookingClient struct {
	session *http.Client
	baseURL string
}

func NewHTTPBookingClient(baseURL string) (*HTTPBookingClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("booking service base URL is empty")
	}

	return &HTTPBookingClient{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type confirmStop struct {
	VenueID   string `json:"venue_id"`
	VenueName string `json:"venue_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type confirmRequest struct {
	PlanID    string        `json:"plan_id"`
	UserID    string        `json:"user_id"`
	GroupSize int           `json:"group_size"`
	Stops     []confirmStop `json:"stops"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// ConfirmPlan books every stop of the itinerary for the group. The call
// is all-or-nothing on the booking side; a non-2xx response means no
// reservations were made.
func (c *HTTPBookingClient) ConfirmPlan(
	ctx context.Context,
	itinerary domain.Itinerary,
	groupSize int,
) (err error) {
	defer obs.Time(ctx, "booking.ConfirmPlan")(&err)

	if groupSize < 1 {
		return fmt.Errorf("confirm plan %s: group size %d is invalid", itinerary.PlanID, groupSize)
	}

	stops := make([]confirmStop, 0, len(itinerary.Stops))
	for _, stop := range itinerary.Stops {
		stops = append(stops, confirmStop{
			VenueID:   stop.Venue.ID,
			VenueName: stop.Venue.Name,
			StartTime: stop.StartTime.Format(time.RFC3339),
			EndTime:   stop.EndTime.Format(time.RFC3339),
		})
	}

	payload, err := json.Marshal(confirmRequest{
		PlanID:    itinerary.PlanID,
		UserID:    itinerary.UserID,
		GroupSize: groupSize,
		Stops:     stops,
	})
	if err != nil {
		return fmt.Errorf("confirm plan %s: encode request: %w", itinerary.PlanID, err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("confirm plan %s: %w", itinerary.PlanID, err)
	}
	resp.Body.Close()

	return nil
}

func (c *HTTPBookingClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (c *HTTPBookingClient) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
