package schema

// PublishingArticleTable represents the 'publishing.article' table
type PublishingArticleTable struct {
	Table     string
	ID        string
	Title     string
	Slug      string
	AuthorID  string
	CreatedAt string
}

// PublishingArticle is the schema definition for publishing.article
var PublishingArticle = PublishingArticleTable{
	Table:     "publishing.article",
	ID:        "id",
	Title:     "title",
	Slug:      "slug",
	AuthorID:  "authorid",
	CreatedAt: "createdat",
}
