package models

// MediaType is the kind of archive resource a resolved media entry points to.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// ResolvedMedia is a quality-tiered set of ready-to-render resource URLs for
// one archive item. Preview <= Display <= Full in resolution tier by
// construction; for videos all three point at the same optimized file since
// the archive publishes no tiered variants.
type ResolvedMedia struct {
	Type    MediaType `json:"type"`
	Title   string    `json:"title"`
	Preview string    `json:"preview"`
	Display string    `json:"display"`
	Full    string    `json:"full"`
}
