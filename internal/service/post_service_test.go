package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getBySlugFn  func(context.Context, string) (*models.Post, error)
	slugExistsFn func(context.Context, string) (bool, error)
	listFn       func(context.Context) ([]*models.Post, error)
	updateFn     func(context.Context, *models.Post) error
	deleteFn     func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *postRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugExistsFn(ctx, slug)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, slug string) error {
	return s.deleteFn(ctx, slug)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:     func(_ context.Context, _ *models.Post) error { return nil },
		getBySlugFn:  func(_ context.Context, _ string) (*models.Post, error) { return &models.Post{}, nil },
		slugExistsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		listFn:       func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:     func(_ context.Context, _ string) error { return nil },
	}
}

// memoryPostRepo is a map-backed PostRepository for end-to-end service
// behavior without a database.
type memoryPostRepo struct {
	nextID  uint
	bySlug  map[string]*models.Post
	byTitle map[string]*models.Post
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{
		nextID:  1,
		bySlug:  map[string]*models.Post{},
		byTitle: map[string]*models.Post{},
	}
}

func (m *memoryPostRepo) Create(_ context.Context, post *models.Post) error {
	if _, taken := m.bySlug[post.Slug]; taken {
		return models.NewConstraintError("a post with this title or slug already exists")
	}
	if _, taken := m.byTitle[post.Title]; taken {
		return models.NewConstraintError("a post with this title or slug already exists")
	}
	post.ID = m.nextID
	m.nextID++
	stored := *post
	m.bySlug[post.Slug] = &stored
	m.byTitle[post.Title] = &stored
	return nil
}

func (m *memoryPostRepo) GetBySlug(_ context.Context, slug string) (*models.Post, error) {
	post, ok := m.bySlug[slug]
	if !ok {
		return nil, models.NewNotFoundError("post", slug)
	}
	copied := *post
	return &copied, nil
}

func (m *memoryPostRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	_, ok := m.bySlug[slug]
	return ok, nil
}

func (m *memoryPostRepo) List(_ context.Context) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(m.bySlug))
	for _, p := range m.bySlug {
		copied := *p
		posts = append(posts, &copied)
	}
	return posts, nil
}

func (m *memoryPostRepo) Update(_ context.Context, post *models.Post) error {
	stored := *post
	m.bySlug[post.Slug] = &stored
	return nil
}

func (m *memoryPostRepo) Delete(_ context.Context, slug string) error {
	post, ok := m.bySlug[slug]
	if !ok {
		return models.NewNotFoundError("post", slug)
	}
	delete(m.byTitle, post.Title)
	delete(m.bySlug, slug)
	return nil
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func validCreateInput() CreatePostInput {
	return CreatePostInput{
		AuthorID: 1,
		Title:    "Hello World",
		Subtitle: "A first post",
		Body:     "<p>Welcome to the blog.</p>",
		ImageURL: "https://example.com/cover.jpg",
	}
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	svc := NewPostService(noopPostRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreatePostInput)
	}{
		{"Missing title", func(in *CreatePostInput) { in.Title = "" }},
		{"Missing subtitle", func(in *CreatePostInput) { in.Subtitle = "" }},
		{"Missing body", func(in *CreatePostInput) { in.Body = "" }},
		{"Missing image URL", func(in *CreatePostInput) { in.ImageURL = "" }},
		{"Bad image URL", func(in *CreatePostInput) { in.ImageURL = "not-a-url" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)
			post, err := svc.CreatePost(ctx, in)
			assert.Nil(t, post)
			assertAppErrorCode(t, err, models.CodeValidationError)
		})
	}
}

func TestPostService_CreatePost_SlugAndDate(t *testing.T) {
	svc := NewPostService(newMemoryPostRepo())
	svc.now = func() time.Time { return time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, "January 02, 2026", post.Date)
}

func TestPostService_CreatePost_SlugCollisionSuffixes(t *testing.T) {
	repo := newMemoryPostRepo()
	svc := NewPostService(repo)
	ctx := context.Background()

	// Same slugified form, different titles.
	first, err := svc.CreatePost(ctx, validCreateInput())
	require.NoError(t, err)

	in := validCreateInput()
	in.Title = "Hello, World!"
	second, err := svc.CreatePost(ctx, in)
	require.NoError(t, err)

	in = validCreateInput()
	in.Title = "Hello   World"
	third, err := svc.CreatePost(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-1", second.Slug)
	assert.Equal(t, "hello-world-2", third.Slug)
}

func TestPostService_CreatePost_DuplicateTitleSlugScenario(t *testing.T) {
	// Two identical titles: the second gets the suffixed slug and only
	// the title uniqueness constraint can reject it.
	repo := newMemoryPostRepo()
	svc := NewPostService(repo)
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)

	second, err := svc.CreatePost(ctx, validCreateInput())
	assert.Nil(t, second)
	assertAppErrorCode(t, err, models.CodeConstraintViolation)
}

func TestPostService_CreatePost_LostSlugRaceRetriesOnce(t *testing.T) {
	calls := 0
	taken := map[string]bool{}
	repo := noopPostRepo()
	repo.slugExistsFn = func(_ context.Context, s string) (bool, error) {
		return taken[s], nil
	}
	repo.createFn = func(_ context.Context, post *models.Post) error {
		calls++
		if calls == 1 {
			// A concurrent writer claimed the candidate between the
			// existence check and the insert.
			taken[post.Slug] = true
			return models.NewConstraintError("a post with this title or slug already exists")
		}
		return nil
	}

	svc := NewPostService(repo)
	post, err := svc.CreatePost(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "hello-world-1", post.Slug)
}

func TestPostService_CreatePost_PersistentConstraintIsFatal(t *testing.T) {
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, _ *models.Post) error {
		return models.NewConstraintError("a post with this title or slug already exists")
	}

	svc := NewPostService(repo)
	post, err := svc.CreatePost(context.Background(), validCreateInput())
	assert.Nil(t, post)
	assertAppErrorCode(t, err, models.CodeConstraintViolation)
}

func TestPostService_CreateThenGetRoundTrip(t *testing.T) {
	svc := NewPostService(newMemoryPostRepo())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, validCreateInput())
	require.NoError(t, err)

	got, err := svc.GetPost(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Subtitle, got.Subtitle)
	assert.Equal(t, created.Date, got.Date)
	assert.Equal(t, created.Body, got.Body)
	assert.Equal(t, created.ImageURL, got.ImageURL)
	assert.Equal(t, created.Slug, got.Slug)
}

func TestPostService_EditPost_NeverTouchesSlugOrDate(t *testing.T) {
	repo := newMemoryPostRepo()
	svc := NewPostService(repo)
	svc.now = func() time.Time { return time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, validCreateInput())
	require.NoError(t, err)

	edited, err := svc.EditPost(ctx, created.Slug, EditPostInput{
		Title:    "A Completely Different Title",
		Subtitle: "New subtitle",
		Body:     "new body",
		ImageURL: "https://example.com/other.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", edited.Slug)
	assert.Equal(t, "January 02, 2026", edited.Date)
	assert.Equal(t, "A Completely Different Title", edited.Title)
	assert.Equal(t, "New subtitle", edited.Subtitle)
	assert.Equal(t, "new body", edited.Body)
	assert.Equal(t, "https://example.com/other.jpg", edited.ImageURL)
}

func TestPostService_EditPost_UnknownSlug(t *testing.T) {
	svc := NewPostService(newMemoryPostRepo())

	post, err := svc.EditPost(context.Background(), "missing", EditPostInput{
		Title:    "T",
		Subtitle: "S",
		Body:     "B",
		ImageURL: "https://example.com/x.jpg",
	})
	assert.Nil(t, post)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostService_DeletePost(t *testing.T) {
	repo := newMemoryPostRepo()
	svc := NewPostService(repo)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, created.Slug))

	_, err = svc.GetPost(ctx, created.Slug)
	assertAppErrorCode(t, err, models.CodeNotFound)

	err = svc.DeletePost(ctx, created.Slug)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostService_ManyCollisions(t *testing.T) {
	repo := newMemoryPostRepo()
	svc := NewPostService(repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		in := validCreateInput()
		// Vary the title texture, keep the slugified form identical.
		in.Title = fmt.Sprintf("Hello World%s", map[int]string{0: "", 1: "!", 2: "?", 3: ".", 4: "…"}[i])
		post, err := svc.CreatePost(ctx, in)
		require.NoError(t, err)
		if i == 0 {
			assert.Equal(t, "hello-world", post.Slug)
		} else {
			assert.Equal(t, fmt.Sprintf("hello-world-%d", i), post.Slug)
		}
	}
}
