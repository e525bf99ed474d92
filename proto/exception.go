package proto

import "fmt"

// Exception is the structured error the server sends in an EXCEPTION
// packet. Nested is non-nil when the server reports a causal chain.
type Exception struct {
	Code       int32
	Name       string
	Message    string
	StackTrace string
	Nested     *Exception
}

// Decode reads one exception record, recursing into Nested when the
// has-nested flag is set.
func (e *Exception) Decode(r *Reader, withStackTrace bool) error {
	var err error
	var code int32
	if code, err = r.Int32(); err != nil {
		return err
	}
	e.Code = code
	if e.Name, err = r.Str(); err != nil {
		return err
	}
	if e.Message, err = r.Str(); err != nil {
		return err
	}
	if e.StackTrace, err = r.Str(); err != nil {
		return err
	}
	if !withStackTrace {
		e.StackTrace = ""
	}
	hasNested, err := r.Bool()
	if err != nil {
		return err
	}
	if hasNested {
		e.Nested = new(Exception)
		return e.Nested.Decode(r, withStackTrace)
	}
	return nil
}

func (e *Exception) Error() string {
	if e == nil {
		return "<nil exception>"
	}
	msg := fmt.Sprintf("[%d] %s: %s", e.Code, e.Name, e.Message)
	if e.Nested != nil {
		msg += ": " + e.Nested.Error()
	}
	return msg
}
