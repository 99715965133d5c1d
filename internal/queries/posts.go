package queries

import (
	"time"

	"github.com/haguru/folio/internal/repository/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fields the joined documents are stored under
const (
	UserField        = "user"
	HashtagDocsField = "hashtag_docs"
)

// PostSort is the listing order: newest first, ties broken by id.
func PostSort() bson.D {
	return bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: -1}}
}

func AllPostsFilter() bson.D {
	return bson.D{}
}

func PostsByAuthorFilter(author primitive.ObjectID) bson.D {
	return bson.D{{Key: "author", Value: author}}
}

// PostsByHashtagFilter matches posts whose hashtag array holds the reference.
func PostsByHashtagFilter(hashtag primitive.ObjectID) bson.D {
	return bson.D{{Key: "hashtags", Value: hashtag}}
}

func PostBySlugFilter(slug string) bson.D {
	return bson.D{{Key: "slug", Value: slug}}
}

// AfterCursorFilter matches the posts sorted strictly after the cursor.
func AfterCursorFilter(after string) (bson.D, error) {
	created, id, err := DecodeCursor(after)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "created", Value: bson.D{{Key: "$lt", Value: created}}}},
		bson.D{
			{Key: "created", Value: created},
			{Key: "_id", Value: bson.D{{Key: "$lt", Value: id}}},
		},
	}}}, nil
}

// PostsWithAuthorsPipeline selects one page of posts matching match and
// joins each post with its author and hashtag documents. It fetches one
// post more than the page size so the caller can tell whether a next
// page exists.
func PostsWithAuthorsPipeline(match bson.D, page Page) (mongo.Pipeline, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
	}

	if page.After != "" {
		after, err := AfterCursorFilter(page.After)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: after}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: PostSort()}},
		bson.D{{Key: "$limit", Value: int64(page.Limit() + 1)}},
	)

	return append(pipeline, JoinAuthorAndHashtags()...), nil
}

// PostBySlugPipeline joins the single post with the given slug.
func PostBySlugPipeline(slug string) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: PostBySlugFilter(slug)}},
		{{Key: "$limit", Value: int64(1)}},
	}
	return append(pipeline, JoinAuthorAndHashtags()...)
}

// PostByIDPipeline joins the single post with the given id.
func PostByIDPipeline(id primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$limit", Value: int64(1)}},
	}
	return append(pipeline, JoinAuthorAndHashtags()...)
}

// JoinAuthorAndHashtags resolves the author and hashtag references of each
// post. Hashtags keep the order they were given in.
func JoinAuthorAndHashtags() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: constants.UsersCollection},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: UserField},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + UserField},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: constants.HashtagsCollection},
			{Key: "localField", Value: "hashtags"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: HashtagDocsField},
		}}},
		OrderHashtagDocs(),
	}
}

// OrderHashtagDocs puts the joined hashtag documents back in the order of
// the post's references, which $lookup does not keep. References without
// a document are dropped.
func OrderHashtagDocs() bson.D {
	byID := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: "$" + HashtagDocsField},
		{Key: "as", Value: "doc"},
		{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$doc._id", "$$id"}}}},
	}}}
	ordered := bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: "$hashtags"},
		{Key: "as", Value: "id"},
		{Key: "in", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{byID, 0}}}},
	}}}

	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: HashtagDocsField, Value: bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: ordered},
			{Key: "as", Value: "doc"},
			{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$doc", nil}}}},
		}}}},
	}}}
}

// SplitPage trims the extra look-ahead row and returns the cursor of the
// next page, or "" when there is none.
func SplitPage[T any](rows []T, page Page, key func(T) (time.Time, primitive.ObjectID)) ([]T, string) {
	limit := page.Limit()
	if len(rows) <= limit {
		return rows, ""
	}
	rows = rows[:limit]
	created, id := key(rows[limit-1])
	return rows, EncodeCursor(created, id)
}
