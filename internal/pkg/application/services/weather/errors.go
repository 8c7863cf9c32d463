package weathersvc

import "errors"

var (
	ErrNetwork    = errors.New("network error")
	ErrHTTPStatus = errors.New("http status error")
	ErrParse      = errors.New("parse error")
	ErrNotFound   = errors.New("weather data not found")
)

// FetchError carries one of the sentinel kinds above together with the underlying cause.
type FetchError struct {
	Kind       error
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return e.Err.Error()
}

func (e *FetchError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func (e *FetchError) KindName() string {
	switch e.Kind {
	case ErrNetwork:
		return "NetworkError"
	case ErrHTTPStatus:
		return "HttpStatusError"
	case ErrParse:
		return "ParseError"
	case ErrNotFound:
		return "NotFound"
	}
	return "UnknownError"
}

// Causes returns the messages of at most n errors in the cause chain below err.
func Causes(err error, n int) []string {
	var fe *FetchError
	if errors.As(err, &fe) {
		err = fe.Err
	}

	causes := []string{}
	for err != nil && len(causes) < n {
		causes = append(causes, err.Error())
		err = errors.Unwrap(err)
	}

	return causes
}
