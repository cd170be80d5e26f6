package model

// FileMetadata describes one default attachment as stored in the document
// store. Only name and size survive across sessions, never the content.
type FileMetadata struct {
	Name string `bson:"name" json:"name"`
	Size int64  `bson:"size" json:"size"`
}

// DefaultsRecord is the per-owner defaults document. One document exists per
// mailbox address, keyed by the "user" field.
type DefaultsRecord struct {
	Owner   string         `bson:"user" json:"user"`
	Subject string         `bson:"subject" json:"subject"`
	Body    string         `bson:"body" json:"body"`
	Files   []FileMetadata `bson:"file_metadata" json:"file_metadata"`
}
