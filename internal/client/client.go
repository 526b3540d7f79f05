// Package client talks to the listo REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	itemDto "listo/internal/domains/item/model/dto"
	listDto "listo/internal/domains/list/model/dto"
	"listo/shared/constant"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.Code, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the server at baseURL. A nil httpClient gets a client with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) GetAll(ctx context.Context) (listDto.AllResponse, error) {
	res := listDto.AllResponse{}

	body, err := c.do(ctx, http.MethodGet, "/api/all", "", nil)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.Wrap(err, "decoding lists")
	}

	return res, nil
}

// CreateItem returns the id the server assigned.
func (c *Client) CreateItem(ctx context.Context, req itemDto.CreateItemRequest) (int64, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, errors.Wrap(err, "encoding item")
	}

	body, err := c.do(ctx, http.MethodPost, "/api/items", constant.ContentTypeJSON, payload)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected item id %q", body)
	}

	return id, nil
}

func (c *Client) UpdateItem(ctx context.Context, id int64, req itemDto.UpdateItemRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "encoding patch")
	}

	_, err = c.do(ctx, http.MethodPatch, itemPath(id), constant.ContentTypeJSON, payload)

	return err
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, itemPath(id), "", nil)

	return err
}

// CreateList returns the slug the list was stored under.
func (c *Client) CreateList(ctx context.Context, name string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/lists", constant.ContentTypeText, []byte(name))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(body)), nil
}

func (c *Client) RenameList(ctx context.Context, slug, name string) error {
	_, err := c.do(ctx, http.MethodPatch, listPath(slug), constant.ContentTypeText, []byte(name))

	return err
}

func (c *Client) DeleteList(ctx context.Context, slug string) error {
	_, err := c.do(ctx, http.MethodDelete, listPath(slug), "", nil)

	return err
}

func (c *Client) do(ctx context.Context, method, path, contentType string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}

	if contentType != "" {
		req.Header.Set(constant.RequestHeaderContentType, contentType)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, constant.RequestMaxBody))
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		statusErr := &StatusError{Code: res.StatusCode, Message: errorMessage(res.StatusCode, body)}
		log.Debug().Str("method", method).Str("path", path).Int("status", res.StatusCode).Msg(statusErr.Message)

		return nil, statusErr
	}

	return body, nil
}

// errorMessage pulls the message out of an error or message envelope, falling back to the raw body.
func errorMessage(code int, body []byte) string {
	envelope := struct {
		Error   *string `json:"error"`
		Message *string `json:"message"`
	}{}

	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Error != nil:
			return *envelope.Error
		case envelope.Message != nil:
			return *envelope.Message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return http.StatusText(code)
}

func itemPath(id int64) string {
	return "/api/items/" + strconv.FormatInt(id, 10)
}

func listPath(slug string) string {
	return "/api/lists/" + url.PathEscape(slug)
}
