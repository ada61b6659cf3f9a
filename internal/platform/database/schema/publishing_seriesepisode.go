package schema

// PublishingSeriesEpisodeTable represents the 'publishing.seriesepisode' table
type PublishingSeriesEpisodeTable struct {
	Table      string
	ID         string
	SeriesID   string
	ArticleID  string
	SortOrder  string
	ReleaseAt  string
	ReleasedAt string
	NotifiedAt string
	CreatedAt  string
}

// PublishingSeriesEpisode is the schema definition for publishing.seriesepisode
var PublishingSeriesEpisode = PublishingSeriesEpisodeTable{
	Table:      "publishing.seriesepisode",
	ID:         "id",
	SeriesID:   "seriesid",
	ArticleID:  "articleid",
	SortOrder:  "sortorder",
	ReleaseAt:  "releaseat",
	ReleasedAt: "releasedat",
	NotifiedAt: "notifiedat",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t PublishingSeriesEpisodeTable) Columns() []string {
	return []string{
		t.ID, t.SeriesID, t.ArticleID, t.SortOrder,
		t.ReleaseAt, t.ReleasedAt, t.NotifiedAt, t.CreatedAt,
	}
}
