package services

import (
	"fmt"
	"sort"
	"testing"

	"notification-center/internal/models"
	"notification-center/internal/repositories"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	db, err := gorm.Open(dsn, &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Notification{}, &models.NotificationViewer{}, &models.FollowerResource{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sortedIDs(ids []uint) []uint {
	out := append([]uint(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestResolveExcludesDoerEverywhere(t *testing.T) {
	db := newTestDB(t)
	followerRepo := repositories.NewPostgresFollowerRepository(db)
	resolver := NewRecipientResolver(followerRepo)

	// doer 42 both follows the resource and appears in the include list
	for _, userID := range []uint{42, 9} {
		if _, err := followerRepo.Follow(userID, 7, "wiki"); err != nil {
			t.Fatalf("Follow(%d): %v", userID, err)
		}
	}

	recipients, err := resolver.Resolve(&models.Event{
		Action:        "resource_created",
		ToFollowers:   true,
		EventResource: &models.Resource{ID: 7, Class: "wiki"},
		IncludeIDs:    []uint{42, 7},
		EventDoer:     &models.Actor{ID: 42},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	got := sortedIDs(recipients)
	if len(got) != 2 || got[0] != 7 || got[1] != 9 {
		t.Fatalf("expected recipients [7 9], got %v", got)
	}
}

func TestResolveAppliesExcludes(t *testing.T) {
	resolver := NewRecipientResolver(repositories.NewPostgresFollowerRepository(newTestDB(t)))

	recipients, err := resolver.Resolve(&models.Event{
		Action:     "comment_added",
		IncludeIDs: []uint{1, 2, 3, 2},
		ExcludeIDs: []uint{2},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	got := sortedIDs(recipients)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected recipients [1 3], got %v", got)
	}
}

func TestResolveIgnoresFollowersWhenNotFlagged(t *testing.T) {
	db := newTestDB(t)
	followerRepo := repositories.NewPostgresFollowerRepository(db)
	resolver := NewRecipientResolver(followerRepo)

	if _, err := followerRepo.Follow(9, 7, "wiki"); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	recipients, err := resolver.Resolve(&models.Event{
		Action:        "resource_created",
		ToFollowers:   false,
		EventResource: &models.Resource{ID: 7, Class: "wiki"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(recipients) != 0 {
		t.Fatalf("expected no recipients, got %v", recipients)
	}
}

func TestResolveFollowersNeedResource(t *testing.T) {
	resolver := NewRecipientResolver(repositories.NewPostgresFollowerRepository(newTestDB(t)))

	recipients, err := resolver.Resolve(&models.Event{
		Action:      "broadcast",
		ToFollowers: true, // no resource attached, so there is nobody to look up
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(recipients) != 0 {
		t.Fatalf("expected no recipients, got %v", recipients)
	}
}
