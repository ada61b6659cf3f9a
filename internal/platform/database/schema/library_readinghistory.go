package schema

// LibraryReadingHistoryTable represents the 'library.readinghistory' table
type LibraryReadingHistoryTable struct {
	Table     string
	UserID    string
	ArticleID string
	Progress  string
	UpdatedAt string
}

// LibraryReadingHistory is the schema definition for library.readinghistory
var LibraryReadingHistory = LibraryReadingHistoryTable{
	Table:     "library.readinghistory",
	UserID:    "userid",
	ArticleID: "articleid",
	Progress:  "progress",
	UpdatedAt: "updatedat",
}
