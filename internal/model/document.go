package model

// Document describes an ingested PDF after text extraction.
// The raw file is never persisted; only extraction metadata survives.
type Document struct {
	ID        string `json:"id"`                  // UUID assigned at intake
	Filename  string `json:"filename"`            // Original upload name
	Pages     int    `json:"pages"`               // Page count
	SizeBytes int64  `json:"size_bytes"`          // Raw file size
	Chars     int    `json:"chars"`               // Extracted character count
	Truncated bool   `json:"truncated,omitempty"` // Whether analysis used a prefix of the text
}
