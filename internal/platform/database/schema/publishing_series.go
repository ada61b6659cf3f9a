package schema

// PublishingSeriesTable represents the 'publishing.series' table
type PublishingSeriesTable struct {
	Table       string
	ID          string
	Slug        string
	Title       string
	Subtitle    string
	Description string
	CoverURL    string
	Status      string
	CuratorID   string
	CreatedAt   string
	UpdatedAt   string
}

// PublishingSeries is the schema definition for publishing.series
var PublishingSeries = PublishingSeriesTable{
	Table:       "publishing.series",
	ID:          "id",
	Slug:        "slug",
	Title:       "title",
	Subtitle:    "subtitle",
	Description: "description",
	CoverURL:    "coverurl",
	Status:      "status",
	CuratorID:   "curatorid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t PublishingSeriesTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Subtitle, t.Description, t.CoverURL,
		t.Status, t.CuratorID, t.CreatedAt, t.UpdatedAt,
	}
}
