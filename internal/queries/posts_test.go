package queries

import (
	"testing"
	"time"

	"github.com/haguru/folio/internal/repository/constants"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func stageValue(t *testing.T, stage bson.D) interface{} {
	t.Helper()
	require.Len(t, stage, 1)
	return stage[0].Value
}

func TestPostsWithAuthorsPipeline_FirstPage(t *testing.T) {
	pipeline, err := PostsWithAuthorsPipeline(AllPostsFilter(), Page{Size: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"$match", "$sort", "$limit", "$lookup", "$unwind", "$lookup", "$addFields"}, stageNames(pipeline))
	assert.Equal(t, PostSort(), stageValue(t, pipeline[1]))
	assert.Equal(t, int64(6), stageValue(t, pipeline[2]))

	authorJoin := stageValue(t, pipeline[3]).(bson.D)
	assert.Contains(t, authorJoin, bson.E{Key: "from", Value: constants.UsersCollection})
	assert.Contains(t, authorJoin, bson.E{Key: "localField", Value: "author"})
	assert.Contains(t, authorJoin, bson.E{Key: "as", Value: UserField})

	tagJoin := stageValue(t, pipeline[5]).(bson.D)
	assert.Contains(t, tagJoin, bson.E{Key: "from", Value: constants.HashtagsCollection})
	assert.Contains(t, tagJoin, bson.E{Key: "as", Value: HashtagDocsField})
}

func TestPostsWithAuthorsPipeline_AfterCursor(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := primitive.NewObjectID()
	tag := primitive.NewObjectID()

	pipeline, err := PostsWithAuthorsPipeline(PostsByHashtagFilter(tag), Page{After: EncodeCursor(created, id)})
	require.NoError(t, err)

	assert.Equal(t, []string{"$match", "$match", "$sort", "$limit", "$lookup", "$unwind", "$lookup", "$addFields"}, stageNames(pipeline))
	assert.Equal(t, bson.D{{Key: "hashtags", Value: tag}}, stageValue(t, pipeline[0]))
	assert.Equal(t, int64(DefaultPageSize+1), stageValue(t, pipeline[3]))

	after := stageValue(t, pipeline[1]).(bson.D)
	require.Len(t, after, 1)
	assert.Equal(t, "$or", after[0].Key)
	clauses := after[0].Value.(bson.A)
	require.Len(t, clauses, 2)
	assert.Equal(t, bson.D{{Key: "created", Value: bson.D{{Key: "$lt", Value: created}}}}, clauses[0])
	assert.Equal(t, bson.D{
		{Key: "created", Value: created},
		{Key: "_id", Value: bson.D{{Key: "$lt", Value: id}}},
	}, clauses[1])
}

func TestPostsWithAuthorsPipeline_InvalidCursor(t *testing.T) {
	_, err := PostsWithAuthorsPipeline(AllPostsFilter(), Page{After: "garbage!"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestPostBySlugPipeline(t *testing.T) {
	pipeline := PostBySlugPipeline("hello-world")

	assert.Equal(t, []string{"$match", "$limit", "$lookup", "$unwind", "$lookup", "$addFields"}, stageNames(pipeline))
	assert.Equal(t, PostBySlugFilter("hello-world"), stageValue(t, pipeline[0]))
}

func TestPostByIDPipeline(t *testing.T) {
	id := primitive.NewObjectID()

	want := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$limit", Value: int64(1)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: constants.UsersCollection},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: constants.HashtagsCollection},
			{Key: "localField", Value: "hashtags"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "hashtag_docs"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "hashtag_docs", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: bson.D{{Key: "$map", Value: bson.D{
					{Key: "input", Value: "$hashtags"},
					{Key: "as", Value: "id"},
					{Key: "in", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{
						bson.D{{Key: "$filter", Value: bson.D{
							{Key: "input", Value: "$hashtag_docs"},
							{Key: "as", Value: "doc"},
							{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$doc._id", "$$id"}}}},
						}}},
						0,
					}}}},
				}}}},
				{Key: "as", Value: "doc"},
				{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$doc", nil}}}},
			}}}},
		}}},
	}

	if diff := cmp.Diff(want, PostByIDPipeline(id)); diff != "" {
		t.Errorf("PostByIDPipeline() mismatch (-want +got):\n%s", diff)
	}
}

type row struct {
	created time.Time
	id      primitive.ObjectID
}

func TestSplitPage(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := []row{
		{base.Add(3 * time.Hour), primitive.NewObjectID()},
		{base.Add(2 * time.Hour), primitive.NewObjectID()},
		{base.Add(1 * time.Hour), primitive.NewObjectID()},
	}
	key := func(r row) (time.Time, primitive.ObjectID) { return r.created, r.id }

	got, next := SplitPage(rows, Page{Size: 2}, key)
	require.Len(t, got, 2)
	created, id, err := DecodeCursor(next)
	require.NoError(t, err)
	assert.True(t, rows[1].created.Equal(created))
	assert.Equal(t, rows[1].id, id)

	got, next = SplitPage(rows, Page{Size: 3}, key)
	assert.Len(t, got, 3)
	assert.Empty(t, next)
}

func TestRateLimitFilter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	filter := RateLimitFilter("create_post", "acc1", 5, 5*time.Minute, now)
	assert.Equal(t, bson.D{
		{Key: "action", Value: "create_post"},
		{Key: "identity", Value: "acc1"},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "events.4", Value: bson.D{{Key: "$exists", Value: false}}}},
			bson.D{{Key: "events.0", Value: bson.D{{Key: "$lte", Value: now.Add(-5 * time.Minute)}}}},
		}},
	}, filter)

	noDecay := RateLimitFilter("login", "a@b.c", 3, 0, now)
	assert.Len(t, noDecay[2].Value.(bson.A), 1)
}

func TestRateLimitUpdate(t *testing.T) {
	now := time.Now()
	update := RateLimitUpdate(3, now)

	push := update[0].Value.(bson.M)["events"].(bson.M)
	assert.Equal(t, -3, push["$slice"])
	assert.Equal(t, bson.A{now}, push["$each"])
	assert.Equal(t, bson.M{"updated": now}, update[1].Value)
}
