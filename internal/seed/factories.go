package seed

import (
	"fmt"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

// defaultPassword is the plaintext behind every seeded account.
const defaultPassword = "inkwell-demo"

// BuildUser constructs a member with faked identity data. It does not
// persist.
func (s *Seeder) BuildUser() *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	name := gofakeit.Name()
	email := strings.ToLower(fmt.Sprintf("%s.%d@%s",
		strings.ReplaceAll(name, " ", "."), s.rand.Intn(10000), gofakeit.DomainName()))

	return &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleMember,
	}
}

// BuildPost constructs a post by the given author with a unique slug
// and a publication date spread over the past year. It does not
// persist.
func (s *Seeder) BuildPost(author *models.User) *models.Post {
	title := s.uniqueTitle(strings.TrimSuffix(gofakeit.Sentence(4+s.rand.Intn(4)), "."))
	published := time.Now().AddDate(0, 0, -s.rand.Intn(365))

	return &models.Post{
		UserID:   author.ID,
		Title:    title,
		Subtitle: strings.TrimSuffix(gofakeit.Sentence(6), "."),
		Date:     published.Format(dateLayout),
		Body:     gofakeit.Paragraph(3, 5, 12, "\n\n"),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/900/450", gofakeit.UUID()),
		Slug:     s.uniqueSlug(title),
	}
}

// uniqueTitle suffixes repeated faked titles with a counter; the title
// column is unique, so a repeat would abort the whole run otherwise.
func (s *Seeder) uniqueTitle(base string) string {
	candidate := base
	for i := 2; s.titles[candidate]; i++ {
		candidate = fmt.Sprintf("%s %d", base, i)
	}
	s.titles[candidate] = true
	return candidate
}

// uniqueSlug mirrors the live create path: the base slug, then -1, -2,
// and so on until unused.
func (s *Seeder) uniqueSlug(title string) string {
	base := slug.Make(title)
	candidate := base
	for i := 1; s.slugs[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	s.slugs[candidate] = true
	return candidate
}
