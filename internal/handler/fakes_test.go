package handler

import (
	"context"
	"sync"
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetByVerifyCode(_ context.Context, code string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.VerifyEmailCode == code })
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *memUserRepo) mutate(id string, fn func(*model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	fn(u)
	return nil
}

func (r *memUserRepo) Update(_ context.Context, id string, patch model.UserPatch) error {
	return r.mutate(id, func(u *model.User) {
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Mobile != nil {
			u.Mobile = *patch.Mobile
		}
	})
}

func (r *memUserRepo) MarkEmailVerified(_ context.Context, id string) error {
	return r.mutate(id, func(u *model.User) { u.VerifyEmail = true })
}

func (r *memUserRepo) RecordLogin(_ context.Context, id, digest string, at time.Time) error {
	return r.mutate(id, func(u *model.User) {
		u.RefreshToken = digest
		u.LastLoginDate = &at
	})
}

func (r *memUserRepo) SetRefreshToken(_ context.Context, id, digest string) error {
	return r.mutate(id, func(u *model.User) { u.RefreshToken = digest })
}

func (r *memUserRepo) SetForgotPasswordOTP(_ context.Context, id, otp string, expiry time.Time) error {
	return r.mutate(id, func(u *model.User) {
		u.ForgotPasswordOTP = otp
		u.ForgotPasswordExpiry = &expiry
	})
}

func (r *memUserRepo) ClearForgotPasswordOTP(_ context.Context, id string) error {
	return r.mutate(id, func(u *model.User) {
		u.ForgotPasswordOTP = ""
		u.ForgotPasswordExpiry = nil
	})
}

func (r *memUserRepo) ResetPassword(_ context.Context, id, hash string) error {
	return r.mutate(id, func(u *model.User) { u.Password = hash })
}

type memCategoryRepo struct {
	categories map[string]*model.Category
	refs       map[string]int64
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{
		categories: make(map[string]*model.Category),
		refs:       make(map[string]int64),
	}
}

func (r *memCategoryRepo) Create(_ context.Context, c *model.Category) error {
	c.ID = uuid.NewString()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetAll(context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) FindByIDs(_ context.Context, ids []string) ([]model.Category, error) {
	var out []model.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) Update(_ context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Image != nil {
		c.Image = *patch.Image
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) CountReferences(_ context.Context, id string) (int64, error) {
	return r.refs[id], nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.categories, id)
	return nil
}

type nopMailer struct {
	sent int
}

func (m *nopMailer) Send(context.Context, string, string, string) error {
	m.sent++
	return nil
}
