package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/heritage-booking/internal/domain"
	siteRepo "github.com/m04kA/heritage-booking/internal/infra/storage/site"
)

// SiteRepository репозиторий площадок в MongoDB
type SiteRepository struct {
	store *Store
}

// Create сохраняет площадку, генерируя ID, если он не задан
func (r *SiteRepository) Create(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	if site.ID == "" {
		site.ID = r.store.newID()
	}

	if _, err := r.store.sites.InsertOne(ctx, toSiteDocument(site)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, siteRepo.ErrSiteNameTaken
		}
		return nil, fmt.Errorf("%w: Create - insert site: %v", ErrQuery, err)
	}

	return site, nil
}

// Update перезаписывает поля площадки, кроме ID и CreatedAt
func (r *SiteRepository) Update(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	doc := toSiteDocument(site)
	update := bson.M{"$set": bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"imageUrl":    doc.ImageURL,
		"timeSlots":   doc.TimeSlots,
		"updatedAt":   doc.UpdatedAt,
	}}

	var updated siteDocument
	err := r.store.sites.FindOneAndUpdate(ctx,
		bson.M{"_id": site.ID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, siteRepo.ErrSiteNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, siteRepo.ErrSiteNameTaken
		}
		return nil, fmt.Errorf("%w: Update - update site: %v", ErrQuery, err)
	}

	return updated.toDomain(), nil
}

// Delete удаляет площадку и её бронирования
func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.sites.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: Delete - delete site: %v", ErrQuery, err)
	}
	if res.DeletedCount == 0 {
		return siteRepo.ErrSiteNotFound
	}

	if _, err := r.store.bookings.DeleteMany(ctx, bson.M{"siteId": id}); err != nil {
		return fmt.Errorf("%w: Delete - delete site bookings: %v", ErrQuery, err)
	}

	return nil
}

// GetByID получает площадку по ID
func (r *SiteRepository) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	return r.findOne(ctx, "GetByID", bson.M{"_id": id})
}

// GetByName получает площадку по точному совпадению имени
func (r *SiteRepository) GetByName(ctx context.Context, name string) (*domain.Site, error) {
	return r.findOne(ctx, "GetByName", bson.M{"name": name})
}

// List возвращает все площадки в порядке имени
func (r *SiteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	cursor, err := r.store.sites.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: List - find sites: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	sites := make([]*domain.Site, 0)
	for cursor.Next(ctx) {
		var doc siteDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: List - decode site: %v", ErrDecode, err)
		}
		sites = append(sites, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - cursor: %v", ErrQuery, err)
	}

	return sites, nil
}

func (r *SiteRepository) findOne(ctx context.Context, op string, filter bson.M) (*domain.Site, error) {
	var doc siteDocument
	err := r.store.sites.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, siteRepo.ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find site: %v", ErrQuery, op, err)
	}
	return doc.toDomain(), nil
}
