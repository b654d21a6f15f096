//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_idmap.go -package=mocks
package idmap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"planning-sync/errors"
)

// Mapper resolves the cross-system association
// (masterId, serviceName) -> serviceLocalId. The mapping is created when
// an entity is first persisted locally, released when it is deleted, and
// looked up on every calendar side effect.
type Mapper interface {
	CreateMasterID(ctx context.Context, serviceID, service string) (string, error)
	AddServiceID(ctx context.Context, masterID, service, serviceID string) error
	GetServiceID(ctx context.Context, masterID, service string) (string, error)
	DeleteServiceID(ctx context.Context, masterID, service string) error
}

// Client talks to the shared master-uuid HTTP service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

func (c *Client) CreateMasterID(ctx context.Context, serviceID, service string) (string, error) {
	payload := map[string]any{
		"ServiceId": serviceID,
		"Service":   service,
	}
	var reply struct {
		Success    bool   `json:"success"`
		MasterUUID string `json:"MasterUuid"`
	}
	if err := c.post(ctx, "/createMasterUuid", payload, &reply); err != nil {
		return "", err
	}
	if !reply.Success || reply.MasterUUID == "" {
		return "", fmt.Errorf("master uuid service refused id %q", serviceID)
	}
	return reply.MasterUUID, nil
}

func (c *Client) AddServiceID(ctx context.Context, masterID, service, serviceID string) error {
	payload := map[string]any{
		"MasterUuid": masterID,
		"Service":    service,
		"ServiceId":  serviceID,
	}
	return c.post(ctx, "/addServiceId", payload, nil)
}

// GetServiceID resolves the local id registered for a master id. An
// unresolved mapping is ErrMappingNotFound; callers treat it as a side
// effect failure, not a storage one.
func (c *Client) GetServiceID(ctx context.Context, masterID, service string) (string, error) {
	payload := map[string]any{
		"MASTERUUID": masterID,
		"Service":    service,
	}
	reply := map[string]string{}
	if err := c.post(ctx, "/getServiceId", payload, &reply); err != nil {
		return "", err
	}
	id, ok := reply[service]
	if !ok || id == "" {
		return "", fmt.Errorf("%w: master id %q for service %q", errors.ErrMappingNotFound, masterID, service)
	}
	return id, nil
}

func (c *Client) DeleteServiceID(ctx context.Context, masterID, service string) error {
	payload := map[string]any{
		"MASTERUUID":   masterID,
		"NewServiceId": nil,
		"Service":      service,
	}
	return c.post(ctx, "/updateServiceId", payload, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s reply: %w", path, err)
	}
	return nil
}
