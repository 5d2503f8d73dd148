package services

import (
	"encoding/json"
	"errors"
	"log"

	"brain-play-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobStore is the durable key-value collaborator: one serialized profile per
// user id. The gorm implementation below is used in production; tests use an
// in-memory map.
type BlobStore interface {
	Get(userID string) (string, bool, error)
	Set(userID, data string) error
	Delete(userID string) error
	Keys() ([]string, error)
}

// GormBlobStore persists profile blobs in the profile_records table.
type GormBlobStore struct {
	DB *gorm.DB
}

func NewGormBlobStore(db *gorm.DB) *GormBlobStore {
	return &GormBlobStore{DB: db}
}

func (s *GormBlobStore) Get(userID string) (string, bool, error) {
	var rec models.ProfileRecord
	if err := s.DB.Where("user_id = ?", userID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return rec.Data, true, nil
}

func (s *GormBlobStore) Set(userID, data string) error {
	rec := models.ProfileRecord{UserID: userID, Data: data}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
}

func (s *GormBlobStore) Delete(userID string) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.ProfileRecord{}).Error
}

func (s *GormBlobStore) Keys() ([]string, error) {
	var ids []string
	err := s.DB.Model(&models.ProfileRecord{}).Pluck("user_id", &ids).Error
	return ids, err
}

// ProfileStore owns the canonical UserProfile. All mutation is routed through
// Mutate so leaderboard reconciliation and persistence stay centralized.
type ProfileStore struct {
	Blobs       BlobStore
	Leaderboard *LeaderboardSynchronizer
}

func NewProfileStore(blobs BlobStore, lb *LeaderboardSynchronizer) *ProfileStore {
	return &ProfileStore{Blobs: blobs, Leaderboard: lb}
}

// Load reads the profile for userID, falling back to the default record on
// absent or malformed data. Missing fields in an older blob are individually
// backfilled from defaults: unmarshalling over a default-initialized struct
// only overwrites fields present in the stored JSON. A leaderboard shorter
// than the minimum population is reseeded.
func (s *ProfileStore) Load(userID string) (models.UserProfile, error) {
	profile := models.DefaultProfile()

	data, found, err := s.Blobs.Get(userID)
	if err != nil {
		return profile, err
	}
	if found {
		if err := json.Unmarshal([]byte(data), &profile); err != nil {
			log.Printf("⚠️ [PROFILE] corrupt blob for %s, falling back to defaults: %v", userID, err)
			profile = models.DefaultProfile()
		}
	}

	profile.Normalize()
	reseeded := false
	if len(profile.Leaderboard) < MinLeaderboardSize {
		profile.Leaderboard = s.Leaderboard.Seed(profile.Coins)
		reseeded = true
	}
	s.Leaderboard.Reconcile(&profile)

	// First run and legacy-data recovery both produce a fresh board; persist it
	// so the synthetic population survives restarts instead of regenerating.
	if !found || reseeded {
		if err := s.save(userID, &profile); err != nil {
			return profile, err
		}
	}
	return profile, nil
}

// Mutate loads the profile, applies fn, reconciles the user's leaderboard row
// and persists the result unconditionally. fn must be total: validation and
// clamping happen before committing, not inside fn.
func (s *ProfileStore) Mutate(userID string, fn func(*models.UserProfile)) (models.UserProfile, error) {
	profile, err := s.Load(userID)
	if err != nil {
		return profile, err
	}
	fn(&profile)
	profile.Normalize()
	s.Leaderboard.Reconcile(&profile)
	if err := s.save(userID, &profile); err != nil {
		return profile, err
	}
	return profile, nil
}

// Reset restores the default record and clears durable storage for userID.
func (s *ProfileStore) Reset(userID string) (models.UserProfile, error) {
	if err := s.Blobs.Delete(userID); err != nil {
		return models.UserProfile{}, err
	}
	return s.Load(userID)
}

func (s *ProfileStore) save(userID string, p *models.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.Blobs.Set(userID, string(data))
}
