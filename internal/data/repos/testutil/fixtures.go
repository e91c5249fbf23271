package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/admitpath-backend/internal/domain"
)

func SeedUser(tb testing.TB, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	now := time.Now().UTC()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// BaselineJSON marshals a baseline the way the progression service freezes
// it into the state snapshot.
func BaselineJSON(tb testing.TB, b types.Baseline) datatypes.JSON {
	tb.Helper()
	raw, err := json.Marshal(b)
	if err != nil {
		tb.Fatalf("marshal baseline: %v", err)
	}
	return datatypes.JSON(raw)
}
