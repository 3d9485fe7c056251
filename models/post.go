package models

// Post types and statuses found in a WordPress export.
const (
	PostTypePost       = "post"
	PostTypeAttachment = "attachment"
	StatusPublish      = "publish"
)

// PostRecord is a single <item> of a WordPress export.
type PostRecord struct {
	PostID        string
	Title         string
	Link          string
	Slug          string
	PubDate       string
	PostDate      string
	Status        string
	PostType      string
	ContentHTML   string
	ExcerptHTML   string
	Categories    []string
	Tags          []string
	AttachmentURL string
}

// IsPublished reports whether the record should be migrated.
func (p PostRecord) IsPublished() bool {
	return p.Status == StatusPublish
}
