package schema

// SocialNotificationTable represents the 'social.notification' table
type SocialNotificationTable struct {
	Table     string
	ID        string
	Type      string
	Message   string
	UserID    string
	ActorID   string
	ArticleID string
	IsRead    string
	CreatedAt string
}

// SocialNotification is the schema definition for social.notification
var SocialNotification = SocialNotificationTable{
	Table:     "social.notification",
	ID:        "id",
	Type:      "type",
	Message:   "message",
	UserID:    "userid",
	ActorID:   "actorid",
	ArticleID: "articleid",
	IsRead:    "isread",
	CreatedAt: "createdat",
}

// Columns returns the columns written by the release fan-out, in insert order.
func (t SocialNotificationTable) Columns() []string {
	return []string{t.ID, t.Type, t.Message, t.UserID, t.ActorID, t.ArticleID, t.CreatedAt}
}
