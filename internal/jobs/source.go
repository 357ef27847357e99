package jobs

import "context"

// Source is the acquisition boundary. Implementations fetch raw postings
// from one platform; the core never talks to the network itself.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*Postings, error)
}

// Query carries the search parameters passed to every source.
type Query struct {
	Keywords      []string
	Location      string
	IncludeRemote bool
	MaxAgeDays    int
}
