package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/internal/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE = 20
	IDFIELD     = "_id"
)

var (
	// ErrUnsafeDocument is returned for filters and updates naming unknown
	// fields or operators.
	ErrUnsafeDocument = errors.New("unsafe document")
	// ErrUnscopedWrite is returned when an update or delete has an empty filter.
	ErrUnscopedWrite = errors.New("update or delete without a filter")
)

// operators allowed as keys in filters
var filterOperators = map[string]bool{
	"$and": true,
	"$or":  true,
	"$nor": true,
}

// operators allowed as keys in updates
var updateOperators = map[string]bool{
	"$set":         true,
	"$setOnInsert": true,
	"$unset":       true,
	"$inc":         true,
	"$push":        true,
	"$pull":        true,
	"$addToSet":    true,
	"$currentDate": true,
}

// MongoDBClient implements the interfaces.DBClient interface for MongoDB operations.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	databaseName     string
	timeout          time.Duration
	validCollections map[string]bool // A map to validate collection names
	validFields      map[string]bool // A map to validate field names
	logger           interfaces.Logger
}

// NewMongoDB returns a interface for db client and error if it occurs
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) (interfaces.DBClient, error) {
	if dbConfig == nil {
		return nil, fmt.Errorf("MongoDBClient: config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("MongoDBClient: logger cannot be nil")
	}

	db := &MongoDBClient{
		timeout:          dbConfig.Timeout,
		databaseName:     dbConfig.DatabaseName,
		validCollections: config.ListToMap(dbConfig.ValidCollections),
		validFields:      config.ListToMap(dbConfig.ValidFields),
		logger:           logger,
	}
	if dbConfig.Options.APIVersion != "" {
		db.ServerOpts = config.BuildServerAPIOptions(dbConfig.Options)
	}

	return db, nil
}

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The DSN should be in the format "mongodb://<host>:<port>/<database>".
// The database name configured explicitly wins over the one in the DSN path.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	// Validate the DSN format
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	databaseName := m.databaseName
	if databaseName == "" {
		var err error
		databaseName, err = getDBNameFromMongoDSN(dsn)
		if err != nil {
			return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
		}
	}

	m.logger.Info("Connecting to MongoDB", "database", databaseName)

	// Set a timeout for the connection
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	clientOptions := options.Client().ApplyURI(dsn)

	// Set the server API options if provided
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	var err error
	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}
	m.logger.Info("Connected to MongoDB server", "database", databaseName)

	m.db = m.client.Database(databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database.
// It checks if the client is not nil before attempting to disconnect.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	m.logger.Info("Disconnecting from MongoDB")
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}

	return nil
}

// InsertOne inserts a document and returns its ID.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	// Avoid logging the document, it may carry password hashes
	m.logger.Debug("Inserting one", "collection", collectionName)

	collection, err := m.collection(collectionName)
	if err != nil {
		return nil, err
	}

	res, err := collection.InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, err)
	}

	return res.InsertedID, nil
}

// FindOne retrieves a single document from the specified collection using a filter.
// It decodes the result into the provided variable and returns an error wrapping
// mongo.ErrNoDocuments if no document is found.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	m.logger.Debug("Finding one", "collection", collectionName, "filter", filter)

	collection, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	sanitized, err := m.sanitizeFilter(filter)
	if err != nil {
		return err
	}

	err = collection.FindOne(ctx, sanitized).Decode(result)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to find one in %s: %w", collectionName, err)
	}

	return nil
}

// FindMany retrieves multiple documents from the specified collection.
// Documents are decoded into results, a pointer to a slice.
func (m *MongoDBClient) FindMany(ctx context.Context, collectionName string, filter interfaces.Document, opts interfaces.FindOptions, results interfaces.Document) error {
	m.logger.Debug("Finding many", "collection", collectionName, "filter", filter)

	collection, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	findOpts := options.Find()
	if opts.Sort != nil {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Projection != nil {
		findOpts.SetProjection(opts.Projection)
	}

	sanitized, err := m.sanitizeFilter(filter)
	if err != nil {
		return err
	}

	cursor, err := collection.Find(ctx, sanitized, findOpts)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Finding many in %s failed: %w", collectionName, err)
	}

	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to decode cursor: %w", err)
	}

	return nil
}

// Aggregate runs the pipeline on the collection and decodes every output document.
func (m *MongoDBClient) Aggregate(ctx context.Context, collectionName string, pipeline interfaces.Document, results interfaces.Document) error {
	m.logger.Debug("Aggregating", "collection", collectionName)

	collection, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Aggregate on %s failed: %w", collectionName, err)
	}

	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to decode cursor: %w", err)
	}

	return nil
}

// UpdateOne modifies a single document in the specified collection using a filter and update document.
// Returns the count of matched documents and an error if the operation fails.
func (m *MongoDBClient) UpdateOne(ctx context.Context, collectionName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	m.logger.Debug("Updating one", "collection", collectionName, "filter", filter)

	sanitized, err := m.scopedFilter(filter)
	if err != nil {
		return 0, err
	}
	changes, err := m.sanitizeUpdate(update)
	if err != nil {
		return 0, err
	}

	collection, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	res, err := collection.UpdateOne(ctx, sanitized, changes)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed updating one in %s: %w", collectionName, err)
	}

	return res.MatchedCount, nil
}

// UpsertOne updates the matching document or inserts a new one.
// Returns true when a document was inserted.
func (m *MongoDBClient) UpsertOne(ctx context.Context, collectionName string, filter interfaces.Document, update interfaces.Document) (bool, error) {
	m.logger.Debug("Upserting one", "collection", collectionName, "filter", filter)

	sanitized, err := m.scopedFilter(filter)
	if err != nil {
		return false, err
	}
	changes, err := m.sanitizeUpdate(update)
	if err != nil {
		return false, err
	}

	collection, err := m.collection(collectionName)
	if err != nil {
		return false, err
	}

	res, err := collection.UpdateOne(ctx, sanitized, changes, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("MongoDBClient: Failed upserting one in %s: %w", collectionName, err)
	}

	return res.UpsertedCount > 0, nil
}

// DeleteOne removes a single document from the specified collection using a filter.
// Returns the count of deleted documents and an error if the operation fails.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	m.logger.Debug("Deleting one", "collection", collectionName, "filter", filter)

	sanitized, err := m.scopedFilter(filter)
	if err != nil {
		return 0, err
	}

	collection, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	res, err := collection.DeleteOne(ctx, sanitized)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting one from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// DeleteMany removes multiple documents from a collection using a filter.
// Returns the count of deleted documents and an error if the operation fails.
func (m *MongoDBClient) DeleteMany(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	m.logger.Debug("Deleting many", "collection", collectionName, "filter", filter)

	sanitized, err := m.scopedFilter(filter)
	if err != nil {
		return 0, err
	}

	collection, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	res, err := collection.DeleteMany(ctx, sanitized)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed Deleting many from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// DropCollection removes a collection with its documents and indexes.
func (m *MongoDBClient) DropCollection(ctx context.Context, collectionName string) error {
	m.logger.Warn("Dropping collection", "collection", collectionName)

	collection, err := m.collection(collectionName)
	if err != nil {
		return err
	}
	if err := collection.Drop(ctx); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to drop %s: %w", collectionName, err)
	}
	return nil
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("MongoDBClient is not connected")
	}
	return m.client.Ping(ctx, nil)
}

// EnsureSchema creates the required index on the specified collection using the provided mongo.IndexModel.
// If the collection does not exist, it will be created automatically.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error {
	if m.db == nil {
		return fmt.Errorf("MongoDBClient is not connected to a database")
	}

	model, ok := schema.(mongo.IndexModel)
	if !ok {
		return fmt.Errorf("EnsureSchema: expected mongo.IndexModel for MongoDB")
	}

	collection, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	name, err := collection.Indexes().CreateOne(ctx, model)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to create index on %s: %w", collectionName, err)
	}
	m.logger.Info("Index ensured", "collection", collectionName, "index", name)
	return nil
}

func (m *MongoDBClient) collection(collectionName string) (*mongo.Collection, error) {
	if collectionName == "" {
		return nil, fmt.Errorf("MongoDBClient: Collection name cannot be empty")
	}
	if !m.validCollections[collectionName] {
		return nil, fmt.Errorf("MongoDBClient: Invalid collection name: %s", collectionName)
	}
	if m.db == nil {
		return nil, fmt.Errorf("MongoDBClient is not connected to a database")
	}
	return m.db.Collection(collectionName), nil
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path")
	}

	// If the path contains additional segments (e.g., /db/collection), use only the first as the database name.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}

// sanitizeFilter rejects filter keys that are neither known fields nor
// allowed logical operators, so caller supplied maps cannot smuggle in
// operators such as $where or silently widen to the whole collection.
// Ordered documents (bson.D) get the same treatment.
func (m *MongoDBClient) sanitizeFilter(filter interfaces.Document) (interfaces.Document, error) {
	switch f := filter.(type) {
	case nil:
		return bson.D{}, nil
	case bson.M:
		return m.sanitizeFilterMap(f)
	case map[string]interface{}:
		return m.sanitizeFilterMap(f)
	case bson.D:
		out := bson.D{}
		for _, e := range f {
			v, err := m.sanitizeFilterEntry(e.Key, e.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, bson.E{Key: e.Key, Value: v})
		}
		return out, nil
	default:
		return filter, nil
	}
}

func (m *MongoDBClient) sanitizeFilterMap(f map[string]interface{}) (bson.M, error) {
	out := bson.M{}
	for key, value := range f {
		v, err := m.sanitizeFilterEntry(key, value)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func (m *MongoDBClient) sanitizeFilterEntry(key string, value interface{}) (interface{}, error) {
	if strings.HasPrefix(key, "$") {
		if !filterOperators[key] {
			m.logger.Warn("Rejecting unsafe filter operator", "key", key)
			return nil, fmt.Errorf("filter operator %q: %w", key, ErrUnsafeDocument)
		}
		clauses, ok := value.(bson.A)
		if !ok {
			return value, nil
		}
		sanitized := bson.A{}
		for _, clause := range clauses {
			c, err := m.sanitizeFilter(clause)
			if err != nil {
				return nil, err
			}
			sanitized = append(sanitized, c)
		}
		return sanitized, nil
	}

	if !m.validField(key) {
		m.logger.Warn("Rejecting invalid filter field", "key", key)
		return nil, fmt.Errorf("filter field %q: %w", key, ErrUnsafeDocument)
	}
	return value, nil
}

// scopedFilter sanitizes the filter of a write and refuses an empty one.
func (m *MongoDBClient) scopedFilter(filter interfaces.Document) (interfaces.Document, error) {
	sanitized, err := m.sanitizeFilter(filter)
	if err != nil {
		return nil, err
	}
	if isEmptyDocument(sanitized) {
		return nil, ErrUnscopedWrite
	}
	return sanitized, nil
}

func isEmptyDocument(doc interfaces.Document) bool {
	switch d := doc.(type) {
	case nil:
		return true
	case bson.D:
		return len(d) == 0
	case bson.M:
		return len(d) == 0
	case map[string]interface{}:
		return len(d) == 0
	default:
		return false
	}
}

// sanitizeUpdate accepts only allowed update operators on valid fields.
func (m *MongoDBClient) sanitizeUpdate(update interfaces.Document) (interfaces.Document, error) {
	var entries bson.D
	switch u := update.(type) {
	case bson.M:
		for k, v := range u {
			entries = append(entries, bson.E{Key: k, Value: v})
		}
	case map[string]interface{}:
		for k, v := range u {
			entries = append(entries, bson.E{Key: k, Value: v})
		}
	case bson.D:
		entries = u
	default:
		return update, nil
	}

	out := bson.D{}
	for _, e := range entries {
		if !updateOperators[e.Key] {
			m.logger.Warn("Rejecting unsafe update operator", "key", e.Key)
			return nil, fmt.Errorf("update operator %q: %w", e.Key, ErrUnsafeDocument)
		}
		fields, ok := e.Value.(bson.M)
		if !ok {
			out = append(out, e)
			continue
		}
		for field := range fields {
			if !m.validField(field) {
				m.logger.Warn("Rejecting invalid update field", "key", field)
				return nil, fmt.Errorf("update field %q: %w", field, ErrUnsafeDocument)
			}
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty update: %w", ErrUnsafeDocument)
	}
	return out, nil
}

// validField accepts known fields and dotted paths rooted at a known field.
func (m *MongoDBClient) validField(key string) bool {
	if key == "" || strings.Contains(key, "$") {
		return false
	}
	root, _, _ := strings.Cut(key, ".")
	return m.validFields[root]
}
