package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fencyatf/Products-Backend/internal/config"
	"github.com/fencyatf/Products-Backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultMongoDatabase = "catalog"
	usersCollection      = "users"
	productsCollection   = "products"
)

type mongoStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	products *mongo.Collection
	timeout  time.Duration
}

// MongoDatabaseName returns the database named in the URL path, or the
// default when the URL names none.
func MongoDatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongodb url: %w", err)
	}
	if cs.Database == "" {
		return defaultMongoDatabase, nil
	}
	return cs.Database, nil
}

func openMongo(ctx context.Context, uri string, cfg config.DatabaseConfig) (*mongoStore, error) {
	dbName, err := MongoDatabaseName(uri)
	if err != nil {
		return nil, err
	}

	opts := options.Client().ApplyURI(uri)
	if cfg.Timeout > 0 {
		opts.SetServerSelectionTimeout(cfg.Timeout)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	db := client.Database(dbName)
	s := &mongoStore{
		client:   client,
		users:    db.Collection(usersCollection),
		products: db.Collection(productsCollection),
		timeout:  cfg.Timeout,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *mongoStore) ensureIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}
	_, err = s.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "price", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create products.price index: %w", err)
	}
	return nil
}

func (s *mongoStore) CreateUser(ctx context.Context, u *models.User) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email %s", ErrDuplicate, u.Email)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *mongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *mongoStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.products.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]models.Product, 0)
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *mongoStore) CreateProduct(ctx context.Context, p *models.Product) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.products.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// idFilter matches a document by _id. Records written by the earlier
// Mongoose service carry ObjectIDs, which reach clients as 24-char hex.
func idFilter(id string) (bson.M, error) {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}, nil
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	return bson.M{"_id": id}, nil
}

func (s *mongoStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var p models.Product
	if err := s.products.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func productSetDoc(patch models.ProductPatch) bson.M {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	return set
}

func (s *mongoStore) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if patch.Empty() {
		return s.GetProduct(ctx, id)
	}
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var p models.Product
	err = s.products.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$set": productSetDoc(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (s *mongoStore) DeleteProduct(ctx context.Context, id string) error {
	filter, err := idFilter(id)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.products.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) CountProductsAbovePrice(ctx context.Context, price float64) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.products.CountDocuments(ctx, bson.M{"price": bson.M{"$gt": price}})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
