package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

const collectionForms = "favourite_food_forms"

// FormRepository implements ports.FormRepository using MongoDB.
type FormRepository struct {
	col *mongo.Collection
}

func NewFormRepository(db *mongo.Database) *FormRepository {
	return &FormRepository{col: db.Collection(collectionForms)}
}

type mongoForm struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `bson:"user_id"`
	AssignedBy  string             `bson:"assigned_by,omitempty"`
	Content     domain.FormContent `bson:"content"`
	Completed   bool               `bson:"completed"`
	AssignedAt  time.Time          `bson:"assigned_at"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty"`
}

func (mf *mongoForm) toDomain() *domain.FormRecord {
	return &domain.FormRecord{
		ID:          mf.ID.Hex(),
		OwnerID:     mf.OwnerID.Hex(),
		AssignedBy:  mf.AssignedBy,
		Content:     mf.Content,
		Completed:   mf.Completed,
		AssignedAt:  mf.AssignedAt,
		CompletedAt: mf.CompletedAt,
	}
}

// Create inserts a new record and writes the generated id back into f.
func (r *FormRepository) Create(ctx context.Context, f *domain.FormRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, ok := parseID(f.OwnerID)
	if !ok {
		return domain.ErrUserNotFound
	}

	doc := mongoForm{
		OwnerID:    owner,
		AssignedBy: f.AssignedBy,
		Content:    f.Content,
		Completed:  f.Completed,
		AssignedAt: f.AssignedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert form: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid.Hex()
	}
	return nil
}

func (r *FormRepository) FindByID(ctx context.Context, id string) (*domain.FormRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrFormNotFound
	}

	var mf mongoForm
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFormNotFound
		}
		return nil, fmt.Errorf("find form: %w", err)
	}
	return mf.toDomain(), nil
}

// List returns matching records in assignment order.
func (r *FormRepository) List(ctx context.Context, filter ports.FormFilter) ([]*domain.FormRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"completed": filter.Completed}
	if filter.OwnerID != "" {
		owner, ok := parseID(filter.OwnerID)
		if !ok {
			return []*domain.FormRecord{}, nil
		}
		query["user_id"] = owner
	}

	opts := options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find forms: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoForm
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode forms: %w", err)
	}

	records := make([]*domain.FormRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toDomain())
	}
	return records, nil
}

// MarkCompleted sets the content and the completed flag only while the record
// is still assigned to ownerID, so concurrent completions cannot both win.
func (r *FormRepository) MarkCompleted(ctx context.Context, id, ownerID string, content domain.FormContent, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := parseID(id)
	if !ok {
		return domain.ErrFormNotFound
	}
	owner, ok := parseID(ownerID)
	if !ok {
		return domain.ErrNotFormOwner
	}

	filter := bson.M{"_id": oid, "user_id": owner, "completed": false}
	update := bson.M{
		"$set": bson.M{
			"content":      content,
			"completed":    true,
			"completed_at": at.UTC(),
		},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("complete form: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFormAlreadyCompleted
	}
	return nil
}

// EnsureIndexes creates the indexes used by the dashboard and history queries.
func (r *FormRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "completed", Value: 1}}},
		{Keys: bson.D{{Key: "completed", Value: 1}, {Key: "assigned_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
