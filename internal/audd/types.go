package audd

// Recognition is the best-guess identification of an audio clip.
type Recognition struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
}

// Label returns the "title artist" string used as a search query for the
// recognized song.
func (r Recognition) Label() string {
	return r.Title + " " + r.Artist
}

// recognizeResponse is the JSON response for a recognition request.
// Result is null when the clip could not be identified.
type recognizeResponse struct {
	Status string       `json:"status"`
	Result *Recognition `json:"result"`
	Error  *apiError    `json:"error"`
}

// apiError represents an AudD API error response.
type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}
