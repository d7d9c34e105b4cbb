package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// APIShape identifies one of the request/response formats a backend exposes.
type APIShape string

const (
	// ShapeChat packages the prompt as a single user turn in a message list.
	ShapeChat APIShape = "chat"

	// ShapeResponses packages the prompt as a flat input.
	ShapeResponses APIShape = "responses"
)

// AllShapes returns every supported API shape in report order.
func AllShapes() []APIShape {
	return []APIShape{ShapeChat, ShapeResponses}
}

// ParseAPIShape converts user input into an APIShape.
// The legacy spelling "chat_completions" is accepted as an alias of chat.
func ParseAPIShape(s string) (APIShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ShapeChat), "chat_completions", "chat-completions":
		return ShapeChat, nil
	case string(ShapeResponses):
		return ShapeResponses, nil
	default:
		return "", NewConfigurationError("unknown api shape %q (want chat or responses)", s)
	}
}

// Valid reports whether the shape is one of the known shapes.
func (s APIShape) Valid() bool {
	return s == ShapeChat || s == ShapeResponses
}

func (s APIShape) String() string {
	return string(s)
}

// FailurePolicy decides what happens to the remaining matrix when one pair fails.
type FailurePolicy string

const (
	// FailFast aborts the run on the first failed invocation.
	FailFast FailurePolicy = "fail-fast"

	// ContinueOnError records the failure and keeps invoking the remaining pairs.
	ContinueOnError FailurePolicy = "continue"
)

// ParseFailurePolicy converts user input into a FailurePolicy. Empty means fail-fast.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FailFast):
		return FailFast, nil
	case string(ContinueOnError):
		return ContinueOnError, nil
	default:
		return "", NewConfigurationError("unknown failure policy %q (want fail-fast or continue)", s)
	}
}

// InvocationRequest is one timed call for a single model/shape pair.
type InvocationRequest struct {
	Model       string
	Shape       APIShape
	Prompt      string
	Temperature *float64 // nil means the backend default
}

// InvocationResult is the shape-agnostic outcome of an invocation.
type InvocationResult struct {
	Model              string   `json:"model"`
	Shape              APIShape `json:"api_shape"`
	LatencyMS          float64  `json:"latency_ms"`
	InputTokens        int      `json:"input_tokens"`
	OutputTokens       int      `json:"output_tokens"`
	ResponseText       string   `json:"response_text"`
	TemperatureApplied bool     `json:"temperature_applied"`
}

// ShapeRequest is what a provider client receives for a single call.
type ShapeRequest struct {
	Model       string
	Shape       APIShape
	Prompt      string
	Temperature *float64
}

// ShapeResponse is the tagged union of the raw responses a provider client returns.
// It is implemented only by ChatShapeResponse and ResponsesShapeResponse.
type ShapeResponse interface {
	shape() APIShape
}

// ChatShapeResponse carries the fields read from a chat completion.
// Nil usage pointers mean the backend omitted the field.
type ChatShapeResponse struct {
	Model            string
	Content          string
	PromptTokens     *int64
	CompletionTokens *int64
}

func (*ChatShapeResponse) shape() APIShape { return ShapeChat }

// ResponsesShapeResponse carries the fields read from a responses call.
// Nil usage pointers mean the backend omitted the field.
type ResponsesShapeResponse struct {
	Model        string
	OutputText   string
	InputTokens  *int64
	OutputTokens *int64
}

func (*ResponsesShapeResponse) shape() APIShape { return ShapeResponses }

// CostBreakdown is the derived price of one invocation, in cents.
type CostBreakdown struct {
	InputCost  decimal.Decimal `json:"input_cost_cents"`
	OutputCost decimal.Decimal `json:"output_cost_cents"`
	Total      decimal.Decimal `json:"total_cost_cents"`
}

// Measurement is a priced invocation result, i.e. one report row.
type Measurement struct {
	InvocationResult
	Cost CostBreakdown `json:"cost"`
}

// BenchmarkRequest describes a models × shapes matrix for one prompt.
type BenchmarkRequest struct {
	Prompt      string
	Models      []string
	Shapes      []APIShape
	Temperature *float64
	Policy      FailurePolicy
}

// InvocationFailure records a failed pair of a continue-on-error run.
type InvocationFailure struct {
	Model string   `json:"model"`
	Shape APIShape `json:"api_shape"`
	Err   error    `json:"-"`
}

// BenchmarkRun is the outcome of a benchmark.
type BenchmarkRun struct {
	ID           uuid.UUID
	Prompt       string
	StartedAt    time.Time
	FinishedAt   time.Time
	Results      []InvocationResult
	Measurements []Measurement
	Failures     []InvocationFailure
}

// TotalCost sums the total cost of every measurement in the run.
func (r *BenchmarkRun) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.Measurements {
		total = total.Add(m.Cost.Total)
	}
	return total
}
