package repositories

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentRepository handles the payments collection, including the dashboard
// aggregation pipelines.
type PaymentRepository struct {
	name string
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{name: "payments"}
}

func (r *PaymentRepository) col() *mongo.Collection { return database.Collection(r.name) }

// ByEmail returns a user's payment history.
func (r *PaymentRepository) ByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cur, err := r.col().Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Insert records a completed payment and returns its generated id.
func (r *PaymentRepository) Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	res, err := r.col().InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// CountByEmail returns how many payments a user has made.
func (r *PaymentRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	return r.col().CountDocuments(ctx, bson.M{"email": email})
}

// RevenueSummary rolls all payments into one bucket: summed price and order
// count. With zero payments the pipeline yields no group at all; that case
// is guarded here and reported as a zero-valued summary, not an error.
func (r *PaymentRepository) RevenueSummary(ctx context.Context) (models.RevenueSummary, error) {
	cur, err := r.col().Aggregate(ctx, RevenuePipeline())
	if err != nil {
		return models.RevenueSummary{}, err
	}

	var results []models.RevenueSummary
	if err := cur.All(ctx, &results); err != nil {
		return models.RevenueSummary{}, err
	}
	if len(results) == 0 {
		return models.RevenueSummary{}, nil
	}
	return results[0], nil
}

// CategorySales expands every payment's purchased menu-item references,
// joins them against the menu collection, and groups by category. Count is
// item occurrences, not payments: a payment buying two salads contributes
// two to the salad row.
func (r *PaymentRepository) CategorySales(ctx context.Context) ([]models.CategorySale, error) {
	cur, err := r.col().Aggregate(ctx, CategoryPipeline())
	if err != nil {
		return nil, err
	}

	var sales []models.CategorySale
	if err := cur.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// RevenuePipeline is the single-pass sum over all payment documents.
func RevenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

// CategoryPipeline flattens purchased item ids, joins against menu, and
// groups by category. Item ids are stored as hex strings on the payment, so
// they are converted to ObjectIDs before the join.
func CategoryPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuItemIds"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "menuObjectId", Value: bson.D{{Key: "$toObjectId", Value: "$menuItemIds"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "menu"},
			{Key: "localField", Value: "menuObjectId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "total", Value: bson.D{{Key: "$round", Value: bson.A{"$total", 2}}}},
			{Key: "count", Value: 1},
		}}},
	}
}
