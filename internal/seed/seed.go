// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

const dateLayout = "January 02, 2006"

// Seeder populates the database with demo content.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
	// slugs and titles track values handed out so far; both columns
	// carry unique indexes, so repeats get numeric suffixes the way
	// the live create path suffixes slugs.
	slugs  map[string]bool
	titles map[string]bool
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:     db,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		slugs:  map[string]bool{},
		titles: map[string]bool{},
	}
}

// ClearAll removes all seeded rows, comments first to respect
// foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Comment{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds an admin owner, numUsers members, numPosts posts by the
// admin, and a handful of comments per post.
func (s *Seeder) Run(numUsers, numPosts int) error {
	admin, err := s.seedAdmin()
	if err != nil {
		return err
	}

	members, err := s.seedMembers(numUsers)
	if err != nil {
		return err
	}

	posts, err := s.seedPosts(admin, numPosts)
	if err != nil {
		return err
	}

	return s.seedComments(posts, members)
}

func (s *Seeder) seedAdmin() (*models.User, error) {
	admin := s.BuildUser()
	admin.Name = "Blog Owner"
	admin.Email = "owner@inkwell.local"
	admin.Role = models.RoleAdmin

	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("seeding admin: %w", err)
	}
	log.Printf("Seeded admin %s (password %q)", admin.Email, defaultPassword)
	return admin, nil
}

func (s *Seeder) seedMembers(n int) ([]*models.User, error) {
	members := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := s.BuildUser()
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seeding member %d: %w", i, err)
		}
		members = append(members, user)
	}
	log.Printf("Seeded %d members", len(members))
	return members, nil
}

func (s *Seeder) seedPosts(author *models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := s.BuildPost(author)
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("seeding post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}

func (s *Seeder) seedComments(posts []*models.Post, members []*models.User) error {
	if len(members) == 0 {
		return nil
	}
	total := 0
	for _, post := range posts {
		for i := 0; i < s.rand.Intn(6); i++ {
			member := members[s.rand.Intn(len(members))]
			comment := &models.Comment{
				Body:   gofakeit.Sentence(8 + s.rand.Intn(12)),
				UserID: member.ID,
				PostID: post.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("seeding comment on %s: %w", post.Slug, err)
			}
			total++
		}
	}
	log.Printf("Seeded %d comments", total)
	return nil
}
