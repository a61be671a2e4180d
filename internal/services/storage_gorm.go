package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// GormRegistryStorage persists registry entries in postgres through gorm.
type GormRegistryStorage struct {
	db *gorm.DB
}

// NewGormRegistryStorage creates postgres-backed registry storage and
// migrates its table.
func NewGormRegistryStorage(db *gorm.DB) (*GormRegistryStorage, error) {
	if err := db.AutoMigrate(&models.RegisteredLeague{}); err != nil {
		return nil, err
	}
	return &GormRegistryStorage{db: db}, nil
}

func (s *GormRegistryStorage) ListByUser(ctx context.Context, community, user string) ([]models.RegisteredLeague, error) {
	var entries []models.RegisteredLeague
	err := s.db.WithContext(ctx).
		Where("community = ? AND user_id = ?", community, user).
		Order("position ASC").
		Find(&entries).Error
	return entries, err
}

func (s *GormRegistryStorage) ListByCommunity(ctx context.Context, community string) ([]models.RegisteredLeague, error) {
	var entries []models.RegisteredLeague
	err := s.db.WithContext(ctx).
		Where("community = ?", community).
		Order("user_id ASC, position ASC").
		Find(&entries).Error
	return entries, err
}

func (s *GormRegistryStorage) ReplaceSet(ctx context.Context, community, user string, entries []models.RegisteredLeague) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community = ? AND user_id = ?", community, user).
			Delete(&models.RegisteredLeague{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// GormCredentialStorage persists credential pairs in their own table.
type GormCredentialStorage struct {
	db *gorm.DB
}

// NewGormCredentialStorage creates postgres-backed credential storage
// and migrates its table.
func NewGormCredentialStorage(db *gorm.DB) (*GormCredentialStorage, error) {
	if err := db.AutoMigrate(&models.LeagueCredential{}); err != nil {
		return nil, err
	}
	return &GormCredentialStorage{db: db}, nil
}

func (s *GormCredentialStorage) Get(ctx context.Context, leagueID string, season int) (*models.LeagueCredential, error) {
	var cred models.LeagueCredential
	err := s.db.WithContext(ctx).
		Where("league_id = ? AND season = ?", leagueID, season).
		First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (s *GormCredentialStorage) Put(ctx context.Context, cred models.LeagueCredential) error {
	return s.db.WithContext(ctx).Save(&cred).Error
}

func (s *GormCredentialStorage) Delete(ctx context.Context, leagueID string, season int) error {
	return s.db.WithContext(ctx).
		Where("league_id = ? AND season = ?", leagueID, season).
		Delete(&models.LeagueCredential{}).Error
}
