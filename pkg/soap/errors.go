package soap

import "fmt"

// ServerError is a structured fault returned by the server: the request
// was transported fine but Zimbra rejected it. Code is the
// machine-readable error ("account.AUTH_FAILED", "account.NO_SUCH_*"),
// Reason the human-readable text and Trace the server-side trace id.
type ServerError struct {
	Code   string
	Reason string
	Trace  string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// UnexpectedResponseError reports a contract violation: no fault was
// signaled but the expected response tag is absent from the body.
type UnexpectedResponseError struct {
	Name string
	Body Params
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("cannot find %s in response %v", e.Name, e.Body)
}
