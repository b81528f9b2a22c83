package contacts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmerAlfiel/Shahen-website/internal/repo"
	"github.com/OmerAlfiel/Shahen-website/pkg/db/models"
	"github.com/OmerAlfiel/Shahen-website/pkg/enums"
)

// Repository exposes persistence helpers for contact submissions.
type Repository interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context, params ListParams) ([]models.Contact, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, update StatusUpdate) (*models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, params SearchParams) ([]models.Contact, int64, error)
	Stats(ctx context.Context, since time.Time) (Stats, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a contacts repository. The connection is resolved on
// every call so a database that came up after boot is picked up.
func NewRepository(conn repo.Connector) Repository {
	return &repositoryImpl{Base: repo.NewBase(conn)}
}

func (r *repositoryImpl) Create(ctx context.Context, contact *models.Contact) error {
	db, err := r.DB(ctx)
	if err != nil {
		return err
	}
	return db.Create(contact).Error
}

func (r *repositoryImpl) List(ctx context.Context, params ListParams) ([]models.Contact, int64, error) {
	db, err := r.DB(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.Contact{})
		if params.Status != "" {
			tx = tx.Where("status = ?", params.Status)
		}
		return tx
	}

	var total int64
	if err := filter(db).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := params.Page.Normalize()
	var rows []models.Contact
	err = filter(db).
		Order(orderClause(params.SortBy, params.SortOrder)).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	db, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	return findByID(db, id)
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, update StatusUpdate) (*models.Contact, error) {
	db, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Contact
	err = db.Transaction(func(tx *gorm.DB) error {
		contact, err := findByID(tx, id)
		if err != nil || contact == nil {
			return err
		}

		contact.Status = update.Status
		if update.AdminNotes != "" {
			notes := update.AdminNotes
			contact.AdminNotes = &notes
		}
		if err := tx.Save(contact).Error; err != nil {
			return err
		}
		updated = contact
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db, err := r.DB(ctx)
	if err != nil {
		return false, err
	}
	result := db.Where("id = ?", id).Delete(&models.Contact{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) Search(ctx context.Context, params SearchParams) ([]models.Contact, int64, error) {
	db, err := r.DB(ctx)
	if err != nil {
		return nil, 0, err
	}

	pattern := "%" + strings.ToLower(params.Term) + "%"
	filter := func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.Contact{}).
			Where("LOWER(name) LIKE ? OR LOWER(message) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := filter(db).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := params.Page.Normalize()
	var rows []models.Contact
	err = filter(db).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repositoryImpl) Stats(ctx context.Context, since time.Time) (Stats, error) {
	db, err := r.DB(ctx)
	if err != nil {
		return Stats{}, err
	}

	var grouped []struct {
		Status enums.ContactStatus
		Count  int64
	}
	err = db.Model(&models.Contact{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&grouped).Error
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, row := range grouped {
		stats.Total += row.Count
		switch row.Status {
		case enums.ContactStatusPending:
			stats.Pending = row.Count
		case enums.ContactStatusProcessed:
			stats.Processed = row.Count
		case enums.ContactStatusReplied:
			stats.Replied = row.Count
		}
	}

	if err := db.Model(&models.Contact{}).
		Where("created_at >= ?", since).
		Count(&stats.TodayCount).Error; err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func findByID(db *gorm.DB, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := db.Where("id = ?", id).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = sortColumns["createdAt"]
	}
	direction := SortDesc
	if strings.EqualFold(sortOrder, SortAsc) {
		direction = SortAsc
	}
	return column + " " + direction
}
