// Package gormstore implements storage.Repository on a gorm database
// connection. It works against both Postgres and the SQLite fallback the
// database manager hands out; the spatial column is WKB so neither
// dialect needs extra awareness.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/waymark/annotate/internal/cache"
	"github.com/waymark/annotate/internal/model"
	"github.com/waymark/annotate/pkg/core"

	"gorm.io/gorm"
)

// Repository persists annotations through gorm. Reads go through a
// record cache since the edit and move workflows re-read the record
// they operate on while a gesture is in progress.
type Repository struct {
	db    *gorm.DB
	cache *cache.RecordCache
}

// New creates a gorm-backed repository.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db, cache: cache.NewRecordCache()}
}

// Init migrates the schema.
func (r *Repository) Init() error {
	if err := r.db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("%w: migrate: %v", core.ErrStorageIO, err)
	}
	return nil
}

// Close is a no-op; the database manager owns the connection.
func (r *Repository) Close() error {
	return nil
}

// GetAll returns all stored annotation records.
func (r *Repository) GetAll(ctx context.Context) ([]core.AnnotationRecord, error) {
	var rows []model.Annotation
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: select annotations: %v", core.ErrStorageIO, err)
	}

	out := make([]core.AnnotationRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.ToCore(row)
		r.cache.Put(rec)
		out = append(out, rec)
	}
	return out, nil
}

// Get returns the record with the given storage id, from cache when
// possible.
func (r *Repository) Get(ctx context.Context, storageID uint) (core.AnnotationRecord, error) {
	if rec, ok := r.cache.Get(storageID); ok {
		return rec, nil
	}

	var row model.Annotation
	err := r.db.WithContext(ctx).First(&row, storageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.AnnotationRecord{}, core.ErrRecordNotFound
	}
	if err != nil {
		return core.AnnotationRecord{}, fmt.Errorf("%w: select annotation %d: %v", core.ErrStorageIO, storageID, err)
	}

	rec := model.ToCore(row)
	r.cache.Put(rec)
	return rec, nil
}

// Add stores a new record and assigns its storage id.
func (r *Repository) Add(ctx context.Context, rec *core.AnnotationRecord) error {
	row, err := model.FromCore(*rec)
	if err != nil {
		return fmt.Errorf("%w: convert annotation: %v", core.ErrStorageIO, err)
	}
	row.ID = 0

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("%w: insert annotation: %v", core.ErrStorageIO, err)
	}
	rec.StorageID = row.ID
	r.cache.Put(*rec)
	return nil
}

// Update replaces the stored record keyed by its storage id.
func (r *Repository) Update(ctx context.Context, rec core.AnnotationRecord) error {
	row, err := model.FromCore(rec)
	if err != nil {
		return fmt.Errorf("%w: convert annotation: %v", core.ErrStorageIO, err)
	}

	res := r.db.WithContext(ctx).Model(&model.Annotation{}).
		Where("id = ?", rec.StorageID).
		Select("Title", "IconName", "Note", "ImagePath", "StartDate", "EndDate", "Latitude", "Longitude", "Location").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("%w: update annotation %d: %v", core.ErrStorageIO, rec.StorageID, res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrRecordNotFound
	}
	r.cache.Put(rec)
	return nil
}

// Delete removes the record with the given storage id. Connections
// touching it are deleted explicitly rather than through cascade
// constraints, which the SQLite fallback does not enforce.
func (r *Repository) Delete(ctx context.Context, storageID uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Annotation{}, storageID)
	if res.Error != nil {
		return fmt.Errorf("%w: delete annotation %d: %v", core.ErrStorageIO, storageID, res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrRecordNotFound
	}

	err := r.db.WithContext(ctx).
		Where("from_id = ? OR to_id = ?", storageID, storageID).
		Delete(&model.Connection{}).Error
	if err != nil {
		return fmt.Errorf("%w: delete connections for %d: %v", core.ErrStorageIO, storageID, err)
	}

	r.cache.Evict(storageID)
	return nil
}

// AddConnection stores a connection and assigns its id.
func (r *Repository) AddConnection(ctx context.Context, c *core.Connection) error {
	row := model.ConnectionFromCore(*c)
	row.ID = 0

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("%w: insert connection: %v", core.ErrStorageIO, err)
	}
	c.ID = row.ID
	return nil
}

// ConnectionsFor returns all connections touching the given storage id.
func (r *Repository) ConnectionsFor(ctx context.Context, storageID uint) ([]core.Connection, error) {
	var rows []model.Connection
	err := r.db.WithContext(ctx).
		Where("from_id = ? OR to_id = ?", storageID, storageID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: select connections for %d: %v", core.ErrStorageIO, storageID, err)
	}

	out := make([]core.Connection, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.ConnectionToCore(row))
	}
	return out, nil
}
