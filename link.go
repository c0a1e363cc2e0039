package toplinks

import "time"

// Source is the URL of a news home page to harvest.
type Source string

// LinkRecord is one anchor harvested from a Source.
type LinkRecord struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	CapturedAt  time.Time `json:"date"`
	Source      Source    `json:"website"`
}

// Validate returns an error if the record contains invalid fields.
func (r *LinkRecord) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "link record source required")
	}
	if r.CapturedAt.IsZero() {
		return Errorf(EINVALID, "link record capture time required")
	}
	return nil
}

// Dataset is the ordered collection of records produced by one run.
// Duplicates are retained.
type Dataset []LinkRecord

// Validate returns the first invalid record's error, if any.
func (d Dataset) Validate() error {
	for i := range d {
		if err := d[i].Validate(); err != nil {
			return Errorf(EINVALID, "record %d: %s", i, ErrorMessage(err))
		}
	}
	return nil
}
