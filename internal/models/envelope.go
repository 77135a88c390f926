package models

// Envelope is the uniform JSON wrapper the ReportBox frontend expects from
// every REST endpoint: {success, message, data|errors, statusCode}.
type Envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       any               `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	StatusCode int               `json:"statusCode"`
}

// OK builds a success envelope carrying data.
func OK(status int, message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data, StatusCode: status}
}

// Fail builds a failure envelope with the error text under errors.exception,
// matching the shape the original backend emitted.
func Fail(status int, message string, err error) Envelope {
	e := Envelope{Success: false, Message: message, StatusCode: status}
	if err != nil {
		e.Errors = map[string]string{"exception": err.Error()}
	}
	return e
}
