package models

type ErrorBody struct {
	Error string `json:"error"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// ErrorResponse builds the bounded error body every endpoint returns.
func ErrorResponse(msg string) ErrorBody {
	return ErrorBody{Error: msg}
}

func MessageResponse(msg string) MessageBody {
	return MessageBody{Message: msg}
}
