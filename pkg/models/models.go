package models

// Teacher represents one listing scraped from a school's teacher page.
// Both fields are optional: a card may expose a name without a photo or a
// photo without a name. Names are stored already sanitized for use as
// file name stems.
type Teacher struct {
	Name   string `json:"name,omitempty"`
	ImgURL string `json:"img_url,omitempty"`
}

// HasImage reports whether the record carries everything needed to
// download its photo.
func (t Teacher) HasImage() bool {
	return t.Name != "" && t.ImgURL != ""
}

// PageResult is the outcome of fetching and parsing one subdomain's
// teacher page. A failed fetch yields an empty Teachers slice with Err
// recording why; the error never aborts sibling pages.
type PageResult struct {
	PageURL  string
	Teachers []Teacher
	Err      error
}
