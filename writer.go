package webscrape

import "context"

// FileRequest is the message sent across the download boundary to the
// collaborator responsible for persisting files.
type FileRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// FileResponse is the collaborator's reply.
type FileResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// FileWriter persists exported text through the download boundary.
type FileWriter interface {
	WriteFile(ctx context.Context, req FileRequest) (*FileResponse, error)
}
