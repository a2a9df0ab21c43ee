package models

// EntryCounts holds the number of rows per record kind across all owners.
type EntryCounts struct {
	Patents      int64 `json:"patents"`
	Publications int64 `json:"publications"`
	Events       int64 `json:"events"`
	Conferences  int64 `json:"conferences"`
}

// UserStats holds the number of rows per record kind for one owner.
type UserStats struct {
	PatentCount      int64 `json:"patent_count"`
	EventCount       int64 `json:"event_count"`
	PublicationCount int64 `json:"publication_count"`
	ConferenceCount  int64 `json:"conference_count"`
}

// RecentEntry is one row of the admin "recently added" feed. Type is the plural kind name.
type RecentEntry struct {
	Type        string `json:"type"`
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AddedDate   Date   `json:"added_date"`
}

// UserEntry is one row of a user's own entries. Type is the singular kind label.
type UserEntry struct {
	Type        string `json:"type"`
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EntryDate   Date   `json:"entry_date"`
}

// Contributor is a user with their total number of records across all kinds.
type Contributor struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	ContributionCount int64  `json:"contributionCount"`
}
