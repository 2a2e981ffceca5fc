package domain

// FetchStatus is the outcome of fetching and normalizing a document
type FetchStatus string

const (
	FetchOK           FetchStatus = "ok"
	FetchRestricted   FetchStatus = "restricted"
	FetchUnrecognized FetchStatus = "unrecognized"
	FetchFailed       FetchStatus = "fetch_error"
	FetchEmpty        FetchStatus = "empty"
)

// ContentKind names the extractor family that produced document text
type ContentKind string

const (
	ContentPDF  ContentKind = "pdf"
	ContentHTML ContentKind = "html"
)

// Fixed messages surfaced to users in place of a summary
const (
	ReasonRestricted   = "This is an internal document and cannot be summarized automatically."
	ReasonUnrecognized = "This link is not from a recognized document domain and cannot be summarized."
	ReasonEmpty        = "Could not extract meaningful text."
	ReasonErrorPrefix  = "An error occurred during processing: "
)

// FetchResult is either normalized plain text (Status FetchOK) or a
// user-facing reason explaining why there is no text.
type FetchResult struct {
	Status FetchStatus `json:"status"`
	Text   string      `json:"text,omitempty"`
	Reason string      `json:"reason,omitempty"`

	ContentKind ContentKind `json:"content_kind,omitempty"`
}

// OK returns true when the result carries document text
func (r *FetchResult) OK() bool {
	return r != nil && r.Status == FetchOK
}

// Message returns the text to show the user when there is no document text
func (r *FetchResult) Message() string {
	if r == nil {
		return ReasonErrorPrefix + "no result"
	}
	return r.Reason
}

// RejectedResult maps a non-allowed link verdict to its fixed result
func RejectedResult(v LinkVerdict) *FetchResult {
	if v == LinkRestricted {
		return &FetchResult{Status: FetchRestricted, Reason: ReasonRestricted}
	}
	return &FetchResult{Status: FetchUnrecognized, Reason: ReasonUnrecognized}
}

// FailedResult wraps a network or HTTP error as a user-facing result
func FailedResult(err error) *FetchResult {
	return &FetchResult{Status: FetchFailed, Reason: ReasonErrorPrefix + err.Error()}
}

// EmptyResult is returned when extraction yields only whitespace
func EmptyResult() *FetchResult {
	return &FetchResult{Status: FetchEmpty, Reason: ReasonEmpty}
}
