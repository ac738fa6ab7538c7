package utils

// ResponseData is the envelope for every REST reply.
type ResponseData struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded panics on error; the recovery middleware turns the panic
// into a structured HTTP response.
func PanicIfNeeded(err error) {
	if err != nil {
		panic(err)
	}
}
