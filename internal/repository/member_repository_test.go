package repository

import (
	"testing"
	"time"

	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/models"

	"gorm.io/gorm"
)

func seedMember(t *testing.T, db *gorm.DB, email, displayName, level, status string, createdAt time.Time) *models.Member {
	t.Helper()
	member := &models.Member{
		Email:        email,
		PasswordHash: "hash",
		DisplayName:  displayName,
		MemberLevel:  level,
		Status:       status,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("seed member %s failed: %v", email, err)
	}
	if !createdAt.IsZero() {
		if err := db.Model(member).Update("created_at", createdAt).Error; err != nil {
			t.Fatalf("backdate member %s failed: %v", email, err)
		}
	}
	return member
}

func TestMemberGetByEmailCaseInsensitive(t *testing.T) {
	db := setupRepositoryTestDB(t, &models.Member{})
	repo := NewMemberRepository(db)

	created := seedMember(t, db, "Amber@Example.com", "Amber", constants.MemberLevelBronze, constants.MemberStatusActive, time.Time{})

	member, err := repo.GetByEmail("  amber@example.COM  ")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if member == nil || member.ID != created.ID {
		t.Fatalf("email lookup should be case-insensitive")
	}

	missing, err := repo.GetByEmail("nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("missing email should return nil, got %v %v", missing, err)
	}
	empty, err := repo.GetByEmail("   ")
	if err != nil || empty != nil {
		t.Fatalf("blank email should return nil")
	}
}

func TestMemberListFilters(t *testing.T) {
	db := setupRepositoryTestDB(t, &models.Member{})
	repo := NewMemberRepository(db)

	base := time.Now().Add(-time.Hour)
	seedMember(t, db, "a@example.com", "陈小姐", constants.MemberLevelBronze, constants.MemberStatusActive, base)
	seedMember(t, db, "b@example.com", "林先生", constants.MemberLevelGold, constants.MemberStatusActive, base.Add(time.Minute))
	seedMember(t, db, "c@example.com", "王太太", constants.MemberLevelGold, constants.MemberStatusDisabled, base.Add(2*time.Minute))

	members, total, err := repo.List(MemberListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || members[0].Email != "c@example.com" {
		t.Fatalf("newest member should come first, total=%d first=%s", total, members[0].Email)
	}

	_, total, err = repo.List(MemberListFilter{Page: 1, PageSize: 10, Level: constants.MemberLevelGold})
	if err != nil || total != 2 {
		t.Fatalf("level filter want 2, got total=%d err=%v", total, err)
	}

	_, total, err = repo.List(MemberListFilter{Page: 1, PageSize: 10, Status: constants.MemberStatusDisabled})
	if err != nil || total != 1 {
		t.Fatalf("status filter want 1, got total=%d err=%v", total, err)
	}

	found, total, err := repo.List(MemberListFilter{Page: 1, PageSize: 10, Search: "林先生"})
	if err != nil || total != 1 || found[0].Email != "b@example.com" {
		t.Fatalf("search by display name want b@example.com, got total=%d", total)
	}
}

func TestMemberDelete(t *testing.T) {
	db := setupRepositoryTestDB(t, &models.Member{})
	repo := NewMemberRepository(db)

	member := seedMember(t, db, "gone@example.com", "即将删除", constants.MemberLevelBronze, constants.MemberStatusActive, time.Time{})

	if err := repo.Delete(member.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	reloaded, err := repo.GetByID(member.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if reloaded != nil {
		t.Fatalf("soft-deleted member should not be visible")
	}

	if err := repo.Delete(0); err != nil {
		t.Fatalf("delete with zero id should be a no-op, got %v", err)
	}
}
