package probe

import (
	"fmt"
	"strings"
)

// Kind is the severity of a stage outcome. Higher values are worse.
type Kind int

const (
	Success Kind = iota
	Warning
	Failure
	Fatal
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Failure:
		return "failure"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "success":
		*k = Success
	case "warning":
		*k = Warning
	case "failure":
		*k = Failure
	case "fatal":
		*k = Fatal
	default:
		return fmt.Errorf("unknown outcome kind %q", string(text))
	}
	return nil
}

// Worst returns the more severe of two kinds.
func Worst(a, b Kind) Kind {
	if b > a {
		return b
	}
	return a
}

// Outcome reports the result of one stage.
type Outcome struct {
	Stage     string `json:"stage"`
	DependsOn string `json:"depends_on,omitempty"`
	Kind      Kind   `json:"status"`
	Detail    string `json:"detail,omitempty"`
}

// Recorder consumes outcomes in execution order.
type Recorder interface {
	Record(Outcome)
}

// Result is what a probe query returns: a value that becomes the stage's
// output handle on success, plus the stage status.
type Result[T any] struct {
	Value  T
	Kind   Kind
	Detail string
}

// Found reports a usable value. Empty collections are still Found.
func Found[T any](value T, detail string) Result[T] {
	return Result[T]{Value: value, Kind: Success, Detail: detail}
}

// Missing reports an informative absence, such as no open project.
func Missing[T any](reason string) Result[T] {
	return Result[T]{Kind: Warning, Detail: reason}
}

// Errored reports a query that raised or returned an error signal.
func Errored[T any](err error) Result[T] {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	return Result[T]{Kind: Failure, Detail: detail}
}

// Abort reports a condition that prevents any further stage from running.
func Abort[T any](reason string) Result[T] {
	return Result[T]{Kind: Fatal, Detail: reason}
}
