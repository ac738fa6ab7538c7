package error

// GenericError is implemented by every application error that maps to an
// HTTP response. The recovery middleware uses it to shape the reply.
type GenericError interface {
	error
	ErrCode() string
	StatusCode() int
}
