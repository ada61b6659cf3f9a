package schema

// PublishingSeriesFollowTable represents the 'publishing.seriesfollow' table
type PublishingSeriesFollowTable struct {
	Table         string
	UserID        string
	SeriesID      string
	NotifyByEmail string
	CreatedAt     string
}

// PublishingSeriesFollow is the schema definition for publishing.seriesfollow
var PublishingSeriesFollow = PublishingSeriesFollowTable{
	Table:         "publishing.seriesfollow",
	UserID:        "userid",
	SeriesID:      "seriesid",
	NotifyByEmail: "notifybyemail",
	CreatedAt:     "createdat",
}
