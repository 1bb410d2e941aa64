// Package iot drives rehabilitation-device sessions through the Karpos
// backend's IoT bridge.
package iot

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/platform/httpclient"
	"github.com/karpos/karpos/internal/platform/validate"
)

// Command is a device session command.
type Command string

const (
	CommandStart Command = "START"
	CommandStop  Command = "STOP"
)

// DeviceStatus is the bridge's liveness report.
type DeviceStatus struct {
	Online  bool   `json:"online"`
	Device  string `json:"device,omitempty"`
	Message string `json:"message,omitempty"`
}

type Service struct {
	client *httpclient.Client
	logger zerolog.Logger
}

func NewService(client *httpclient.Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// SendCommand posts a START/STOP command for the given appointment's device
// session. Unknown commands are rejected; the appointment id is coerced
// through the numeric validator.
func (s *Service) SendCommand(ctx context.Context, cmd Command, citaID any, exerciseType string) error {
	if cmd != CommandStart && cmd != CommandStop {
		return fmt.Errorf("unknown IoT command %q", cmd)
	}
	payload := map[string]any{
		"cmd":          cmd,
		"citaId":       validate.PositiveInt(citaID, 1, s.logger),
		"exerciseType": exerciseType,
	}
	_, err := s.client.Do(ctx, http.MethodPost, "/iot/command", payload)
	return err
}

// Status probes the bridge's liveness endpoint.
func (s *Service) Status(ctx context.Context) (DeviceStatus, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, "/iot/status", nil)
	if err != nil {
		return DeviceStatus{}, err
	}
	var status DeviceStatus
	if err := resp.Decode(&status); err != nil {
		return DeviceStatus{}, err
	}
	return status, nil
}
