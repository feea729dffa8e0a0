package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []interface{} `json:"command"`
	RequestID int           `json:"request_id,omitempty"`
}

// ipcResponse is the JSON structure received from mpv's IPC socket.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	Error     string      `json:"error"`
	RequestID int         `json:"request_id"`
	Event     string      `json:"event"`
}

const (
	maxRetries = 3
	retryDelay = 100 * time.Millisecond
)

// errPropertyUnavailable is mpv's reply for a property that has no value yet.
const errPropertyUnavailable = "property unavailable"

// sendCommand sends a JSON-IPC command to mpv, retrying transient connection errors.
// Commands on a single engine are serialized.
func (m *MPV) sendCommand(ctx context.Context, command ...interface{}) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		result, err := doSendCommand(ctx, m.socketPath, command)
		if err == nil {
			return result, nil
		}
		if _, ok := err.(*mpvError); ok {
			// mpv answered; retrying will not change its mind.
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// mpvError is an error reported by mpv itself, as opposed to a transport failure.
type mpvError struct {
	command string
	reason  string
}

func (e *mpvError) Error() string {
	return fmt.Sprintf("mpv %s: %s", e.command, e.reason)
}

// doSendCommand performs a single IPC command attempt on a fresh connection.
func doSendCommand(ctx context.Context, socketPath string, command []interface{}) (interface{}, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
	}

	const requestID = 1
	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: requestID})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON.
	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	// The socket may interleave unrelated events before our reply.
	decoder := json.NewDecoder(conn)
	for {
		var resp ipcResponse
		if err := decoder.Decode(&resp); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		if resp.Event != "" || resp.RequestID != requestID {
			continue
		}

		if resp.Error != "" && resp.Error != "success" {
			name, _ := command[0].(string)
			return nil, &mpvError{command: name, reason: resp.Error}
		}

		return resp.Data, nil
	}
}
