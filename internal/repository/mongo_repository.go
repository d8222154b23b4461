package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samirnagib/app-lista-compras/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const currentListKey = "current_list"

type mongoRepository struct {
	lists   *mongo.Collection
	session *mongo.Collection
}

// NewMongoRepository builds a repository over the given database using
// the "lists" and "session" collections.
func NewMongoRepository(db *mongo.Database) ListRepository {
	return &mongoRepository{
		lists:   db.Collection("lists"),
		session: db.Collection("session"),
	}
}

// Mongo documents keep money as Decimal128; the domain uses
// shopspring decimals, converted at this boundary.
type productDoc struct {
	ID        string               `bson:"_id"`
	Name      string               `bson:"name"`
	Quantity  int                  `bson:"quantity"`
	UnitPrice primitive.Decimal128 `bson:"unit_price"`
	ImageURL  string               `bson:"image_url,omitempty"`
	Category  string               `bson:"category,omitempty"`
	Checked   bool                 `bson:"checked"`
}

type listDoc struct {
	ID            string               `bson:"_id"`
	Name          string               `bson:"name"`
	Products      []productDoc         `bson:"products"`
	Budget        primitive.Decimal128 `bson:"budget"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
	SupermarketID string               `bson:"supermarket_id,omitempty"`
}

func (m *mongoRepository) GetAllLists(ctx context.Context) ([]*domain.ShoppingList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.lists.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*domain.ShoppingList
	for cursor.Next(ctx) {
		var doc listDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		list, err := fromListDoc(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, list)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return result, nil
}

func (m *mongoRepository) GetList(ctx context.Context, id string) (*domain.ShoppingList, error) {
	var doc listDoc
	err := m.lists.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return fromListDoc(doc)
}

func (m *mongoRepository) SaveList(ctx context.Context, list *domain.ShoppingList) error {
	now := time.Now()
	if list.CreatedAt.IsZero() {
		list.CreatedAt = now
	}
	list.UpdatedAt = now

	doc, err := toListDoc(list)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": list.ID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := m.lists.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert list: %w", err)
	}
	return nil
}

func (m *mongoRepository) DeleteList(ctx context.Context, id string) error {
	res, err := m.lists.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrListNotFound
	}

	// Drop the session pointer if it referenced the deleted list.
	filter := bson.M{"_id": currentListKey, "list_id": id}
	if _, err := m.session.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to clear current list pointer: %w", err)
	}
	return nil
}

func (m *mongoRepository) GetCurrentListID(ctx context.Context) (string, error) {
	var doc struct {
		ListID string `bson:"list_id"`
	}
	err := m.session.FindOne(ctx, bson.M{"_id": currentListKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNoCurrentList
		}
		return "", fmt.Errorf("failed to get current list id: %w", err)
	}
	return doc.ListID, nil
}

func (m *mongoRepository) SetCurrentListID(ctx context.Context, id string) error {
	filter := bson.M{"_id": currentListKey}
	update := bson.M{"$set": bson.M{"list_id": id}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.session.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to set current list id: %w", err)
	}
	return nil
}

func toListDoc(list *domain.ShoppingList) (listDoc, error) {
	budget, err := toDecimal128(list.Budget)
	if err != nil {
		return listDoc{}, err
	}

	products := make([]productDoc, 0, len(list.Products))
	for _, p := range list.Products {
		price, err := toDecimal128(p.UnitPrice)
		if err != nil {
			return listDoc{}, err
		}
		products = append(products, productDoc{
			ID:        p.ID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: price,
			ImageURL:  p.ImageURL,
			Category:  p.Category,
			Checked:   p.Checked,
		})
	}

	return listDoc{
		ID:            list.ID,
		Name:          list.Name,
		Products:      products,
		Budget:        budget,
		CreatedAt:     list.CreatedAt,
		UpdatedAt:     list.UpdatedAt,
		SupermarketID: list.SupermarketID,
	}, nil
}

func fromListDoc(doc listDoc) (*domain.ShoppingList, error) {
	budget, err := fromDecimal128(doc.Budget)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		price, err := fromDecimal128(p.UnitPrice)
		if err != nil {
			return nil, err
		}
		products = append(products, domain.Product{
			ID:        p.ID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: price,
			ImageURL:  p.ImageURL,
			Category:  p.Category,
			Checked:   p.Checked,
		})
	}

	return &domain.ShoppingList{
		ID:            doc.ID,
		Name:          doc.Name,
		Products:      products,
		Budget:        budget,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
		SupermarketID: doc.SupermarketID,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	out, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to encode decimal %s: %w", d, err)
	}
	return out, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decode decimal %s: %w", d, err)
	}
	return out, nil
}
