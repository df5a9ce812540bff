package store

// Article is the unit of storage. The same struct serves both the raw and the
// processed representation; enrichment only ever adds fields, so a processed
// record is always a superset of its raw counterpart.
type Article struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Date           string   `json:"date"` // opaque feed-provided string, not guaranteed parseable
	Link           string   `json:"link"`
	Source         string   `json:"source"`
	Categories     []string `json:"categories"`
	FetchTimestamp string   `json:"fetch_timestamp"`
	Processed      bool     `json:"processed"`

	// Enrichment-added fields. Absent on raw records.
	FullContent        string `json:"full_content,omitempty"`
	Summary            string `json:"summary,omitempty"`
	Domain             string `json:"domain,omitempty"`
	ReadingTimeMinutes int    `json:"reading_time_minutes,omitempty"`
	ProcessingError    string `json:"processing_error,omitempty"`
	ProcessedTimestamp string `json:"processed_timestamp,omitempty"`
}
