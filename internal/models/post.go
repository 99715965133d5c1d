package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a blog entry. Author and Hashtags are references.
type Post struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title    string               `bson:"title" json:"title"`
	Slug     string               `bson:"slug" json:"slug"`
	Content  string               `bson:"content" json:"content"`
	Author   primitive.ObjectID   `bson:"author" json:"author"`
	Hashtags []primitive.ObjectID `bson:"hashtags" json:"hashtags"`
	Views    int64                `bson:"views" json:"views"`
	Created  time.Time            `bson:"created" json:"created"`
	Updated  time.Time            `bson:"updated" json:"updated"`
}

// PostWithAuthor is a post joined with its author and hashtag documents.
// The post fields are inlined so aggregation output decodes directly.
type PostWithAuthor struct {
	Post     Post      `bson:",inline" json:"post"`
	User     *User     `bson:"user,omitempty" json:"user,omitempty"`
	Hashtags []Hashtag `bson:"hashtag_docs,omitempty" json:"hashtags"`
}

// PostPage is one page of a listing. Next is empty on the last page.
type PostPage struct {
	Items []PostWithAuthor `json:"items"`
	Next  string           `json:"next,omitempty"`
}

// TagNames returns the names of the joined hashtags.
func (p PostWithAuthor) TagNames() []string {
	names := make([]string, 0, len(p.Hashtags))
	for _, h := range p.Hashtags {
		names = append(names, h.Name)
	}
	return names
}
