package config

const (
	// MaxTitleLength is the maximum length for document titles.
	// Derived titles are truncated to this length; explicit titles are rejected.
	MaxTitleLength = 255

	// MaxContentLength is the maximum size of a stored document body in bytes.
	MaxContentLength = 1 << 20

	// MaxLabelLength bounds the denormalized link label kept in document_links.
	MaxLabelLength = 255

	// MaxSearchQueryLength bounds the substring search query of list views.
	MaxSearchQueryLength = 200

	// PreviewWordLimit is roughly two lines of a list card.
	PreviewWordLimit = 25
)
