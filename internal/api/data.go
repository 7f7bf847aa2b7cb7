package api

// TranscriptRequest is the body of POST /api/transcript
type TranscriptRequest struct {
	VideoID *string `json:"videoId"`
}

// TranscriptResponse is returned on success
type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

// ErrorResponse is returned for every error status
type ErrorResponse struct {
	Detail string `json:"detail"`
}
