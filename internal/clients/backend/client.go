// Package backend consumes the barbershop REST service. It is the only
// place that talks to the network: one base URL, a bounded timeout, the
// bearer credential re-read on every call, no retry and no caching.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/srmendes/dashboard/internal/entity"
	"github.com/srmendes/dashboard/pkg/transport"
)

// DefaultBaseURL is used when no API_BASE_URL override is configured.
const DefaultBaseURL = "https://sr-mendes-dashboard.vercel.app"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration, creds transport.CredentialProvider) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport.NewBearerRoundTripper(creds, http.DefaultTransport),
		},
	}
}

func (c *Client) Clients(ctx context.Context) ([]entity.Client, error) {
	var out []entity.Client

	err := c.do(ctx, http.MethodGet, "/clientes", nil, &out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateClient(ctx context.Context, in entity.NewClient) (entity.Client, error) {
	var out entity.Client

	err := c.do(ctx, http.MethodPost, "/clientes/owner", in, &out)
	if err != nil {
		return entity.Client{}, err
	}

	return out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id string, in entity.ClientUpdate) (entity.Client, error) {
	var out entity.Client

	err := c.do(ctx, http.MethodPut, "/clientes/"+url.PathEscape(id), in, &out)
	if err != nil {
		return entity.Client{}, err
	}

	return out, nil
}

func (c *Client) Appointments(ctx context.Context) ([]entity.Appointment, error) {
	var out []entity.Appointment

	err := c.do(ctx, http.MethodGet, "/agendamentos/owner", nil, &out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, in entity.NewAppointment) (entity.Appointment, error) {
	var out entity.Appointment

	err := c.do(ctx, http.MethodPost, "/agendamentos/owner", in, &out)
	if err != nil {
		return entity.Appointment{}, err
	}

	return out, nil
}

// UpdateAppointment hits an endpoint the backend does not guarantee to
// serve. Replies that look like a missing route come back as
// entity.ErrUnsupported so the caller can say so instead of no-opping.
func (c *Client) UpdateAppointment(ctx context.Context, id string, in entity.AppointmentUpdate) (entity.Appointment, error) {
	var out entity.Appointment

	err := c.do(ctx, http.MethodPut, "/agendamentos/"+url.PathEscape(id), in, &out)
	if err != nil {
		var httpErr *entity.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.Status {
			case http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusNotImplemented:
				return entity.Appointment{}, fmt.Errorf("update appointment %s: %w", id, entity.ErrUnsupported)
			}
		}

		return entity.Appointment{}, err
	}

	return out, nil
}

func (c *Client) CancelAppointment(ctx context.Context, id string) (entity.Appointment, error) {
	var out entity.Appointment

	err := c.do(ctx, http.MethodPut, "/agendamentos/"+url.PathEscape(id)+"/cancelar", nil, &out)
	if err != nil {
		return entity.Appointment{}, err
	}

	return out, nil
}

func (c *Client) CompleteAppointment(ctx context.Context, id string) (entity.Appointment, error) {
	var out entity.Appointment

	err := c.do(ctx, http.MethodPut, "/agendamentos/"+url.PathEscape(id)+"/finalizar", nil, &out)
	if err != nil {
		return entity.Appointment{}, err
	}

	return out, nil
}

func (c *Client) ReportBundle(ctx context.Context, from, to time.Time) (entity.ReportBundle, error) {
	path := "/relatorios/dashboard"

	q := url.Values{}
	if !from.IsZero() {
		q.Set("inicio", from.Format(entity.DateLayout))
	}

	if !to.IsZero() {
		q.Set("fim", to.Format(entity.DateLayout))
	}

	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out entity.ReportBundle

	err := c.do(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		return entity.ReportBundle{}, err
	}

	return out, nil
}

// ExportReport streams the rendered report document. The caller owns the
// returned body.
func (c *Client) ExportReport(ctx context.Context) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/relatorios/export.pdf", nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", wrapTransportErr(err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)

		return nil, "", &entity.HTTPError{Status: resp.StatusCode, Message: serverMessage(body)}
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapTransportErr(err)
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &entity.HTTPError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}

	if out == nil {
		return nil
	}

	err = json.Unmarshal(raw, out)
	if err != nil {
		return fmt.Errorf("%w: decode response: %s", entity.ErrBadShape, err)
	}

	return nil
}

func wrapTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("do request: %w", entity.ErrTimeout)
	}

	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return fmt.Errorf("do request: %w", entity.ErrTimeout)
	}

	return fmt.Errorf("do request: %w", err)
}

// serverMessage pulls the error text out of the backend's {"error": "..."}
// envelope. Anything else yields an empty message and the caller falls
// back to a generic one.
func serverMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return ""
	}

	if envelope.Error != "" {
		return envelope.Error
	}

	return envelope.Message
}
