package seventeentrack

// Wire types for the 17track v2.2 API. The tracking payload uses the
// provider's single-letter keys: e = latest status code, z0 = latest
// provider block, z = event list (newest first), a/z/c = date, location,
// description of one event.

// AlreadyRegisteredCode is returned for a number the provider is already
// monitoring. Treated as an idempotent success by callers.
const AlreadyRegisteredCode = -18010012

type RegisterRequest struct {
	Number  string `json:"number"`
	Carrier int    `json:"carrier,omitempty"`
}

type TrackRequest struct {
	Number string `json:"number"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type RegisterAccepted struct {
	Number  string `json:"number"`
	Carrier int    `json:"carrier"`
}

type RejectedItem struct {
	Number string   `json:"number"`
	Error  APIError `json:"error"`
}

type RegisterData struct {
	Accepted []RegisterAccepted `json:"accepted"`
	Rejected []RejectedItem     `json:"rejected"`
}

type RegisterResponse struct {
	Code int          `json:"code"`
	Data RegisterData `json:"data"`
}

type TrackEvent struct {
	Date        string `json:"a"`
	Location    string `json:"z"`
	Description string `json:"c"`
}

type TrackProvider struct {
	Events []TrackEvent `json:"z"`
}

type Track struct {
	LatestStatus int           `json:"e"`
	Provider     TrackProvider `json:"z0"`
}

type TrackItem struct {
	Number string `json:"number"`
	Track  Track  `json:"track"`
}

type TrackData struct {
	Accepted []TrackItem    `json:"accepted"`
	Rejected []RejectedItem `json:"rejected"`
}

type TrackInfoResponse struct {
	Code int       `json:"code"`
	Data TrackData `json:"data"`
}
