package request

// AnswerRequest is the request body for answering the presented quiz.
// Choice is a pointer so a missing field can be told apart from option 0.
type AnswerRequest struct {
	Choice *int `json:"choice"`
}

// HostLoginRequest is the request body for logging in as host
type HostLoginRequest struct {
	Password string `json:"password"`
}
