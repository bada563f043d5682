package oracle

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/fairdiv/valuation"
)

// ErrBadResponse indicates the solver's reply could not be turned into a
// division.
var ErrBadResponse = errors.New("oracle: malformed solver response")

// DefaultTimeout bounds a single solver call when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// Solver endpoints.
const (
	EndpointThreeAgent        = "/api/three_agent"
	EndpointFourAgent         = "/api/four_agent"
	EndpointPiecewiseConstant = "/api/piecewise_constant"
)

// Request is the body posted to every endpoint.
type Request struct {
	Preferences []valuation.Profile `json:"preferences"`
	CakeSize    float64             `json:"cakeSize"`
}

// Cuts holds up to three cut positions. Three-agent replies use Left and
// Right only.
type Cuts struct {
	Left   float64 `json:"left"`
	Middle float64 `json:"middle,omitempty"`
	Right  float64 `json:"right"`
}

// Interval is one segment of a piecewise-constant segmentation.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Response is the union of the fields the endpoints reply with.
//
// Assignment maps a 1-based slice index to a 0-based agent index.
// Condition 0 means the equipartition is final; 1 means the solver reduced
// a slice, named by Specifics (0: the middle slice, 1: the first slice),
// and settled on Division.
type Response struct {
	Equipartition Cuts               `json:"equipartition"`
	Division      Cuts               `json:"division"`
	Assignment    map[int]int        `json:"assignment"`
	ChosenAgent   int                `json:"chosen_agent"`
	Condition     int                `json:"condition"`
	Specifics     int                `json:"specifics"`
	Segments      []map[int]Interval `json:"segments,omitempty"`
	CutPositions  []int              `json:"cut_positions,omitempty"`
	AgentsNumber  int                `json:"agents_number,omitempty"`
}

// APIError is returned when the solver answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Code != "" {
		return fmt.Sprintf("oracle: solver error (%d): %s - %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("oracle: solver error (%d): %s", e.StatusCode, e.Message)
}
