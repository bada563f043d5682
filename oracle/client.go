package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/fairdiv/envyfree"
	"github.com/katalvlaran/fairdiv/valuation"
)

// Client posts division requests to a solver service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request outcomes.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client for the solver rooted at rawURL. Without
// WithHTTPClient a client with DefaultTimeout is used.
func NewClient(rawURL string, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("oracle: invalid base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("oracle: base url %q needs a scheme and host", rawURL)
	}
	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BranzeiNisan asks the three-agent endpoint for a division.
func (c *Client) BranzeiNisan(ctx context.Context, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error) {
	if len(profiles) != 3 {
		return envyfree.Result{}, fmt.Errorf("%w: branzei-nisan needs 3, got %d", envyfree.ErrInvalidAgentCount, len(profiles))
	}
	resp, err := c.request(ctx, EndpointThreeAgent, profiles, cakeSize)
	if err != nil {
		return envyfree.Result{}, err
	}
	return BuildThreeAgent(resp, profiles, cakeSize)
}

// HollenderRubinstein asks the four-agent endpoint for a division.
func (c *Client) HollenderRubinstein(ctx context.Context, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error) {
	if len(profiles) != 4 {
		return envyfree.Result{}, fmt.Errorf("%w: hollender-rubinstein needs 4, got %d", envyfree.ErrInvalidAgentCount, len(profiles))
	}
	resp, err := c.request(ctx, EndpointFourAgent, profiles, cakeSize)
	if err != nil {
		return envyfree.Result{}, err
	}
	return BuildFourAgent(resp, profiles, cakeSize)
}

// PiecewiseConstant asks the piecewise-constant endpoint for a division of
// three or four agents.
func (c *Client) PiecewiseConstant(ctx context.Context, profiles []valuation.Profile, cakeSize float64) (envyfree.Result, error) {
	if n := len(profiles); n != 3 && n != 4 {
		return envyfree.Result{}, fmt.Errorf("%w: piecewise-constant needs 3 or 4, got %d", envyfree.ErrInvalidAgentCount, n)
	}
	resp, err := c.request(ctx, EndpointPiecewiseConstant, profiles, cakeSize)
	if err != nil {
		return envyfree.Result{}, err
	}
	return BuildPiecewiseConstant(resp, profiles, cakeSize)
}

func (c *Client) request(ctx context.Context, endpoint string, profiles []valuation.Profile, cakeSize float64) (Response, error) {
	if err := valuation.ValidateAll(profiles, cakeSize); err != nil {
		return Response{}, err
	}
	return c.Solve(ctx, endpoint, Request{Preferences: profiles, CakeSize: cakeSize})
}

// Solve posts req to endpoint and decodes the reply.
func (c *Client) Solve(ctx context.Context, endpoint string, req Request) (Response, error) {
	start := time.Now()
	var out Response
	err := c.post(ctx, endpoint, req, &out)
	if err != nil {
		c.logger.Warn("solver call failed",
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return Response{}, err
	}
	c.logger.Debug("solver call",
		zap.String("endpoint", endpoint),
		zap.Int("agents", len(req.Preferences)),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	rel := &url.URL{Path: path.Join(c.baseURL.Path, endpoint)}
	u := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read error response: %w", err)
		}
		if len(data) > 0 {
			if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Message == "" {
				apiErr.Message = strings.TrimSpace(string(data))
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrBadResponse, err)
	}
	return nil
}
