package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/postboard/api/internal/core/domain"
	"github.com/postboard/api/internal/core/ports"
	"github.com/postboard/api/internal/infrastructure/security"
	"github.com/postboard/api/internal/infrastructure/validation"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	err    error

	// createErr fails Create only, after lookups have succeeded.
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user%02d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindPublicByID(_ context.Context, id string) (*domain.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	pub := u.Public()
	return &pub, nil
}

func (r *stubUserRepo) FindPublicByIDs(_ context.Context, ids []string) (map[string]domain.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]domain.PublicUser, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Public()
		}
	}
	return out, nil
}

type stubPostRepo struct {
	mu     sync.Mutex
	posts  map[string]*domain.Post
	nextID int
	err    error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	created := clonePost(p)
	created.ID = fmt.Sprintf("post%02d", r.nextID)
	r.posts[created.ID] = clonePost(created)
	return created, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
	}
	// Same ordering as the store: created_at, then id, both descending.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

// countingHasher records how many hashes and comparisons were made.
type countingHasher struct {
	*security.BcryptHasher
	mu       sync.Mutex
	hashes   int
	verifies int
	lastHash string
	hashErr  error
}

func newCountingHasher() *countingHasher {
	return &countingHasher{BcryptHasher: security.NewBcryptHasher(bcrypt.MinCost)}
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.mu.Lock()
	h.hashes++
	err := h.hashErr
	h.mu.Unlock()
	if err != nil {
		return "", err
	}
	return h.BcryptHasher.Hash(password)
}

func (h *countingHasher) Verify(password, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.lastHash = hash
	h.mu.Unlock()
	return h.BcryptHasher.Verify(password, hash)
}

func (h *countingHasher) resetCount() {
	h.mu.Lock()
	h.hashes = 0
	h.verifies = 0
	h.lastHash = ""
	h.mu.Unlock()
}

type fixture struct {
	users    *stubUserRepo
	posts    *stubPostRepo
	hasher   *countingHasher
	tokens   *security.JWTService
	auth     *AuthService
	content  *PostService
	resolver *IdentityResolver
}

func newFixture() *fixture {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	hasher := newCountingHasher()
	tokens := security.NewJWTService(testSecret, time.Hour)
	v := validation.New()
	log := zerolog.Nop()

	return &fixture{
		users:    users,
		posts:    posts,
		hasher:   hasher,
		tokens:   tokens,
		auth:     NewAuthService(users, hasher, tokens, v, log),
		content:  NewPostService(posts, users, v, log),
		resolver: NewIdentityResolver(tokens, users, log),
	}
}

// signUp registers a user and returns the identity a request bearing the
// issued token would resolve to.
func (f *fixture) signUp(name, email string) (domain.Identity, *domain.AuthPayload) {
	payload, err := f.auth.Register(context.Background(), ports.RegisterInput{Name: name, Email: email, Password: "password1"})
	if err != nil {
		panic(fmt.Sprintf("register %s: %v", email, err))
	}
	return f.resolver.Resolve(context.Background(), "Bearer "+payload.Token), payload
}
