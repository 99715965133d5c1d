package interfaces

import "context"

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. It could be a struct, a bson.M, a bson.D,
// or any type that can be marshaled/unmarshaled by the specific database driver.
type Document interface{}

// FindOptions narrows a FindMany call.
type FindOptions struct {
	// Sort is a driver specific ordered sort document (e.g. bson.D).
	Sort Document
	// Limit caps the number of documents returned. Zero means no limit.
	Limit int64
	// Projection restricts the returned fields.
	Projection Document
}

// DBClient defines the interface for a generic database client.
// It abstracts common document database operations.
type DBClient interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	// Returns an error if the connection fails.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	// Returns an error if the disconnection fails.
	Disconnect(ctx context.Context) error

	// InsertOne inserts a single document into the specified collection.
	// Returns the ID of the inserted document and an error.
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// FindOne retrieves a single document from the specified collection
	// that matches the provided filter and decodes it into result.
	// Returns an error wrapping ErrNoDocuments when nothing matches.
	FindOne(ctx context.Context, collectionName string, filter Document, result Document) error

	// FindMany retrieves the documents matching filter and decodes them
	// into results, which must be a pointer to a slice.
	FindMany(ctx context.Context, collectionName string, filter Document, opts FindOptions, results Document) error

	// Aggregate runs a pipeline and decodes the output into results,
	// which must be a pointer to a slice.
	Aggregate(ctx context.Context, collectionName string, pipeline Document, results Document) error

	// UpdateOne updates a single document in the specified collection
	// that matches the provided filter with the given update data.
	// Returns the count of matched documents and an error.
	UpdateOne(ctx context.Context, collectionName string, filter Document, update Document) (int64, error)

	// UpsertOne updates the document matching filter or inserts one built
	// from filter and update. Returns whether a document was inserted.
	UpsertOne(ctx context.Context, collectionName string, filter Document, update Document) (bool, error)

	// DeleteOne deletes a single document from the specified collection
	// that matches the provided filter.
	// Returns the count of deleted documents and an error.
	DeleteOne(ctx context.Context, collectionName string, filter Document) (int64, error)

	// DeleteMany deletes multiple documents from the specified collection
	// that match the provided filter. Updates and deletes refuse an empty
	// filter; use DropCollection to clear a collection.
	// Returns the count of deleted documents and an error.
	DeleteMany(ctx context.Context, collectionName string, filter Document) (int64, error)

	// EnsureSchema creates the given index on a collection.
	EnsureSchema(ctx context.Context, collectionName string, schema Document) error

	// DropCollection removes a collection together with its indexes.
	DropCollection(ctx context.Context, collectionName string) error

	// Ping checks the health of the database connection.
	// Returns an error if the database is unreachable or unhealthy.
	Ping(ctx context.Context) error
}
