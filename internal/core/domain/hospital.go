package domain

// Speciality is a single entry from an upstream hospital's speciality listing.
type Speciality struct {
	Name string `json:"speciality"`
}

// SourceResult is the outcome of querying one hospital source. Every configured
// source produces exactly one SourceResult; a failed fetch yields Failed=true
// with an empty list rather than dropping the source from the output.
type SourceResult struct {
	Source       string       `json:"source"`
	Specialities []Speciality `json:"specialities"`
	Failed       bool         `json:"failed"`
}
