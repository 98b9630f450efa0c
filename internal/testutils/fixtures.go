package testutils

import (
	"fmt"

	"terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/model/category"
	"terminal-terrace/ai-magazine/internal/model/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateTestUser creates a test user with a unique email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()

	testUser := &user.User{
		Name:   fmt.Sprintf("test_user_%s", uniqueID[:8]),
		Email:  fmt.Sprintf("test_%s@example.com", uniqueID),
		Role:   "user",
		Status: user.StatusActive,
	}
	WithPassword("password123")(testUser)

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}
	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithRole sets the role
func WithRole(role string) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithStatus sets the status
func WithStatus(status string) UserOption {
	return func(u *user.User) {
		u.Status = status
	}
}

// WithPassword hashes and sets the password
func WithPassword(password string) UserOption {
	return func(u *user.User) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		u.PasswordHash = string(hash)
	}
}

// CreateTestCategory creates a test category
func CreateTestCategory(db *gorm.DB, parentID *uint) *category.Category {
	uniqueID := uuid.New().String()
	c := &category.Category{
		Name:     "Danh mục " + uniqueID[:8],
		Slug:     "danh-muc-" + uniqueID,
		ParentID: parentID,
	}
	if err := db.Create(c).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test category: %v", err))
	}
	return c
}

// CreateTestArticle creates a test article with unique slug and source URL
func CreateTestArticle(db *gorm.DB, opts ...ArticleOption) *article.Article {
	uniqueID := uuid.New().String()

	a := &article.Article{
		Title:      "Test Article " + uniqueID,
		Slug:       "test-article-" + uniqueID,
		Content:    "<p>Nội dung bài viết thử nghiệm</p>",
		SourceName: "Test",
		SourceURL:  "https://news.example.com/" + uniqueID,
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := db.Create(a).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}
	return a
}

// ArticleOption configures test article
type ArticleOption func(*article.Article)

// WithSlug sets the slug
func WithSlug(slug string) ArticleOption {
	return func(a *article.Article) {
		a.Slug = slug
	}
}

// WithSourceURL sets the source URL
func WithSourceURL(url string) ArticleOption {
	return func(a *article.Article) {
		a.SourceURL = url
	}
}

// WithCategory sets the category
func WithCategory(id uint) ArticleOption {
	return func(a *article.Article) {
		a.CategoryID = &id
	}
}

// CreateTestRewrite creates a pending rewritten article for the given article
func CreateTestRewrite(db *gorm.DB, articleID uint) *article.RewrittenArticle {
	r := &article.RewrittenArticle{
		ArticleID: articleID,
		Content:   "<p>Nội dung đã viết lại</p>",
		Status:    article.RewriteStatusPending,
		Provider:  "openai",
	}
	if err := db.Create(r).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test rewrite: %v", err))
	}
	return r
}
