// Package group coordinates shared focus sessions. One participant's failure
// is propagated to every other member through a coordinator service, and
// failures observed elsewhere arrive back through the listener.
package group

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// queueSize is the bounded channel capacity for outbound failure events.
const queueSize = 64

// failureEvent is the JSON payload POSTed to the coordinator.
type failureEvent struct {
	GroupID   string `json:"group_id"`
	UserID    string `json:"user_id,omitempty"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

// Client dispatches group failures to the coordinator service. Events are
// enqueued non-blockingly into a bounded channel and sent by a background
// goroutine. If the channel is full, events are dropped; propagation is
// best-effort by contract.
type Client struct {
	baseURL string
	userID  string
	client  *http.Client
	events  chan failureEvent
	wg      sync.WaitGroup
}

// NewClient creates a coordinator client and starts its background loop.
func NewClient(baseURL, userID string) *Client {
	c := &Client{
		baseURL: baseURL,
		userID:  userID,
		client:  &http.Client{Timeout: 10 * time.Second},
		events:  make(chan failureEvent, queueSize),
	}

	c.wg.Add(1)

	go c.loop()

	return c
}

// FailGroup queues a "fail this group for everyone" event. It never blocks.
func (c *Client) FailGroup(groupID string) {
	evt := failureEvent{
		GroupID:   groupID,
		UserID:    c.userID,
		Reason:    "member_failed",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	select {
	case c.events <- evt:
	default:
		slog.Warn("group client: queue full, dropping event",
			slog.String("group_id", groupID),
		)
	}
}

// Close shuts down the client, draining any remaining events.
func (c *Client) Close() {
	close(c.events)
	c.wg.Wait()
}

// loop reads from the event channel and sends each event.
func (c *Client) loop() {
	defer c.wg.Done()

	for evt := range c.events {
		c.send(evt)
	}
}

// send POSTs the event to the coordinator with one retry on 5xx.
func (c *Client) send(evt failureEvent) {
	body, err := json.Marshal(evt)
	if err != nil {
		slog.Warn("group client: marshal failed", slog.Any("error", err))
		return
	}

	url := fmt.Sprintf("%s/v1/groups/%s/fail", c.baseURL, evt.GroupID)

	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			time.Sleep(1 * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			slog.Warn("group client: request creation failed",
				slog.Any("error", err),
			)

			return
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			slog.Warn("group client: request failed",
				slog.Any("error", err),
				slog.Int("attempt", attempt+1),
			)

			continue
		}

		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return
		}

		if resp.StatusCode >= 500 {
			slog.Warn("group client: server error",
				slog.Int("status", resp.StatusCode),
				slog.Int("attempt", attempt+1),
			)

			continue // retry on 5xx
		}

		// 4xx: log and do not retry (client error).
		slog.Warn("group client: client error",
			slog.Int("status", resp.StatusCode),
		)

		return
	}
}
