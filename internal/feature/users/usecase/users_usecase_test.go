package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"shop_backend/internal/feature/users/domain/entity"
	"shop_backend/internal/platform/mail"
)

// mockUserStore is a mock implementation of the UserStore interface.
type mockUserStore struct {
	FindByEmailFunc  func(ctx context.Context, email string) (*entity.User, error)
	FindAllFunc      func(ctx context.Context) ([]entity.User, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.User, error)
	CreateFunc       func(ctx context.Context, user *entity.User) error
	UpdateFieldsFunc func(ctx context.Context, id uint, fields map[string]any) error
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserStore) FindAll(ctx context.Context) ([]entity.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserStore) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserStore) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

// mockConfirmationIssuer is a mock implementation of ConfirmationIssuer.
type mockConfirmationIssuer struct {
	IssueFunc func(email string) (string, error)
}

func (m *mockConfirmationIssuer) Issue(email string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(email)
	}
	return "mock-confirmation-token", nil
}

// mockMailer is a mock implementation of Mailer.
type mockMailer struct {
	SendFunc func(ctx context.Context, msg mail.Message) error
	sent     []mail.Message
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

func newUsecase(store *mockUserStore, issuer *mockConfirmationIssuer, mailer *mockMailer) *usersUsecase {
	return NewUsersUsecase(store, issuer, mailer, "http://localhost/auth/confirm-email", "no-reply@example.com")
}

func strPtr(s string) *string { return &s }

func rolePtr(r entity.Role) *entity.Role { return &r }

func TestUsersUsecase_Create(t *testing.T) {
	t.Run("successful creation hashes the password and leaves the account pending", func(t *testing.T) {
		var created *entity.User
		store := &mockUserStore{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}
		mailer := &mockMailer{}

		uc := newUsecase(store, &mockConfirmationIssuer{}, mailer)
		err := uc.Create(context.Background(), CreateInput{
			Email:    "new@example.com",
			Name:     "New User",
			Password: "password123",
			Role:     entity.RoleUser,
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil {
			t.Fatal("store.Create was not called")
		}
		if created.IsActive != 0 {
			t.Errorf("expected isActive 0, got %d", created.IsActive)
		}
		if created.Password == "password123" {
			t.Error("password stored as plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")); err != nil {
			t.Errorf("stored digest does not verify: %v", err)
		}
	})

	t.Run("confirmation mail carries the token link", func(t *testing.T) {
		store := &mockUserStore{}
		issuer := &mockConfirmationIssuer{
			IssueFunc: func(email string) (string, error) { return "tok-abc", nil },
		}
		mailer := &mockMailer{}

		uc := newUsecase(store, issuer, mailer)
		if err := uc.Create(context.Background(), CreateInput{Email: "new@example.com", Name: "N", Password: "password123", Role: entity.RoleUser}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(mailer.sent) != 1 {
			t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
		}
		msg := mailer.sent[0]
		if msg.To != "new@example.com" {
			t.Errorf("unexpected recipient %q", msg.To)
		}
		if msg.Subject != "Please Verify Your Account" {
			t.Errorf("unexpected subject %q", msg.Subject)
		}
		wantLink := "http://localhost/auth/confirm-email?token=tok-abc"
		if !strings.Contains(msg.HTML, wantLink) {
			t.Errorf("mail body %q does not contain %q", msg.HTML, wantLink)
		}
	})

	t.Run("duplicate email rejected before any insert", func(t *testing.T) {
		createCalled := false
		store := &mockUserStore{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				createCalled = true
				return nil
			},
		}
		mailer := &mockMailer{}

		uc := newUsecase(store, &mockConfirmationIssuer{}, mailer)
		err := uc.Create(context.Background(), CreateInput{Email: "taken@example.com", Name: "N", Password: "password123", Role: entity.RoleUser})

		if !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("expected ErrDuplicateEmail, got %v", err)
		}
		if createCalled {
			t.Error("store.Create must not run after a duplicate check failure")
		}
		if len(mailer.sent) != 0 {
			t.Error("no mail should be sent for a rejected creation")
		}
	})

	t.Run("empty password rejected", func(t *testing.T) {
		uc := newUsecase(&mockUserStore{}, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Create(context.Background(), CreateInput{Email: "new@example.com", Name: "N", Role: entity.RoleUser})
		if err == nil {
			t.Error("expected an error for an empty password")
		}
	})

	t.Run("mail failure is swallowed, user stays created", func(t *testing.T) {
		store := &mockUserStore{}
		mailer := &mockMailer{
			SendFunc: func(ctx context.Context, msg mail.Message) error {
				return errors.New("provider unavailable")
			},
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, mailer)
		err := uc.Create(context.Background(), CreateInput{Email: "new@example.com", Name: "N", Password: "password123", Role: entity.RoleUser})

		if err != nil {
			t.Errorf("mail failure must not surface to the caller, got %v", err)
		}
	})

	t.Run("token issuance failure is swallowed and no mail is sent", func(t *testing.T) {
		issuer := &mockConfirmationIssuer{
			IssueFunc: func(email string) (string, error) { return "", errors.New("no secret") },
		}
		mailer := &mockMailer{}

		uc := newUsecase(&mockUserStore{}, issuer, mailer)
		err := uc.Create(context.Background(), CreateInput{Email: "new@example.com", Name: "N", Password: "password123", Role: entity.RoleUser})

		if err != nil {
			t.Errorf("token failure must not surface to the caller, got %v", err)
		}
		if len(mailer.sent) != 0 {
			t.Error("mail must not be sent without a token")
		}
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		store := &mockUserStore{
			CreateFunc: func(ctx context.Context, user *entity.User) error { return storeErr },
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Create(context.Background(), CreateInput{Email: "new@example.com", Name: "N", Password: "password123", Role: entity.RoleUser})

		if !errors.Is(err, storeErr) {
			t.Errorf("expected store error, got %v", err)
		}
	})
}

func TestUsersUsecase_Update(t *testing.T) {
	stored := func() *entity.User {
		return &entity.User{
			ID:       5,
			Email:    "old@example.com",
			Name:     "Old Name",
			Password: "old-digest",
			Role:     entity.RoleUser,
			ImageURL: "http://img/old.png",
			IsActive: 1,
		}
	}

	t.Run("name-only patch keeps every other field", func(t *testing.T) {
		var gotFields map[string]any
		store := &mockUserStore{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return stored(), nil },
			UpdateFieldsFunc: func(ctx context.Context, id uint, fields map[string]any) error {
				gotFields = fields
				return nil
			},
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Update(context.Background(), 5, UpdatePatch{Name: strPtr("New Name")})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotFields["name"] != "New Name" {
			t.Errorf("expected name override, got %v", gotFields["name"])
		}
		if gotFields["email"] != "old@example.com" {
			t.Errorf("email must keep its stored value, got %v", gotFields["email"])
		}
		if gotFields["password"] != "old-digest" {
			t.Errorf("password must keep its stored value, got %v", gotFields["password"])
		}
		if gotFields["role"] != entity.RoleUser {
			t.Errorf("role must keep its stored value, got %v", gotFields["role"])
		}
		if gotFields["image_url"] != "http://img/old.png" {
			t.Errorf("imageUrl must keep its stored value, got %v", gotFields["image_url"])
		}
		if _, ok := gotFields["updated_at"]; !ok {
			t.Error("updated_at must always be refreshed")
		}
	})

	t.Run("password patch is re-hashed", func(t *testing.T) {
		var gotFields map[string]any
		store := &mockUserStore{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return stored(), nil },
			UpdateFieldsFunc: func(ctx context.Context, id uint, fields map[string]any) error {
				gotFields = fields
				return nil
			},
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Update(context.Background(), 5, UpdatePatch{Password: strPtr("newpassword1")})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		digest, _ := gotFields["password"].(string)
		if digest == "newpassword1" || digest == "old-digest" {
			t.Fatalf("password was not re-hashed: %q", digest)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte("newpassword1")); err != nil {
			t.Errorf("new digest does not verify: %v", err)
		}
	})

	t.Run("email patch re-checked against other users", func(t *testing.T) {
		store := &mockUserStore{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return stored(), nil },
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 99, Email: email}, nil
			},
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Update(context.Background(), 5, UpdatePatch{Email: strPtr("taken@example.com")})

		if !errors.Is(err, ErrUpdateRejected) {
			t.Errorf("expected ErrUpdateRejected, got %v", err)
		}
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("cause must stay inspectable, got %v", err)
		}
	})

	t.Run("keeping one's own email is not a conflict", func(t *testing.T) {
		store := &mockUserStore{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return stored(), nil },
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return stored(), nil // same ID 5
			},
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Update(context.Background(), 5, UpdatePatch{Email: strPtr("old@example.com")})

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("role patch applied", func(t *testing.T) {
		var gotFields map[string]any
		store := &mockUserStore{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return stored(), nil },
			UpdateFieldsFunc: func(ctx context.Context, id uint, fields map[string]any) error {
				gotFields = fields
				return nil
			},
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		if err := uc.Update(context.Background(), 5, UpdatePatch{Role: rolePtr(entity.RoleAdmin)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotFields["role"] != entity.RoleAdmin {
			t.Errorf("expected role override, got %v", gotFields["role"])
		}
	})

	t.Run("unknown id wraps ErrUpdateRejected", func(t *testing.T) {
		uc := newUsecase(&mockUserStore{}, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Update(context.Background(), 404, UpdatePatch{Name: strPtr("X")})

		if !errors.Is(err, ErrUpdateRejected) {
			t.Errorf("expected ErrUpdateRejected, got %v", err)
		}
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("cause must stay inspectable, got %v", err)
		}
	})

	t.Run("store failure wraps ErrUpdateRejected", func(t *testing.T) {
		storeErr := errors.New("deadlock detected")
		store := &mockUserStore{
			FindByIDFunc:     func(ctx context.Context, id uint) (*entity.User, error) { return stored(), nil },
			UpdateFieldsFunc: func(ctx context.Context, id uint, fields map[string]any) error { return storeErr },
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Update(context.Background(), 5, UpdatePatch{Name: strPtr("X")})

		if !errors.Is(err, ErrUpdateRejected) || !errors.Is(err, storeErr) {
			t.Errorf("expected wrapped store error, got %v", err)
		}
	})
}

func TestUsersUsecase_Activate(t *testing.T) {
	t.Run("pending account becomes active", func(t *testing.T) {
		var gotID uint
		var gotFields map[string]any
		store := &mockUserStore{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 7, Email: email, IsActive: 0}, nil
			},
			UpdateFieldsFunc: func(ctx context.Context, id uint, fields map[string]any) error {
				gotID = id
				gotFields = fields
				return nil
			},
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Activate(context.Background(), "pending@example.com")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotID != 7 {
			t.Errorf("expected update on id 7, got %d", gotID)
		}
		if gotFields["is_active"] != 1 {
			t.Errorf("expected is_active 1, got %v", gotFields["is_active"])
		}
		if _, ok := gotFields["updated_at"]; !ok {
			t.Error("updated_at must be refreshed")
		}
	})

	t.Run("second activation fails with ErrAlreadyActive", func(t *testing.T) {
		store := &mockUserStore{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 7, Email: email, IsActive: 1}, nil
			},
		}

		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		err := uc.Activate(context.Background(), "active@example.com")

		if !errors.Is(err, ErrAlreadyActive) {
			t.Errorf("expected ErrAlreadyActive, got %v", err)
		}
	})

	t.Run("empty email fails with ErrUserNotFound", func(t *testing.T) {
		uc := newUsecase(&mockUserStore{}, &mockConfirmationIssuer{}, &mockMailer{})
		if err := uc.Activate(context.Background(), ""); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("unknown email fails with ErrUserNotFound", func(t *testing.T) {
		uc := newUsecase(&mockUserStore{}, &mockConfirmationIssuer{}, &mockMailer{})
		if err := uc.Activate(context.Background(), "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUsersUsecase_List(t *testing.T) {
	want := []entity.User{{ID: 1, Email: "a@example.com"}, {ID: 2, Email: "b@example.com"}}
	store := &mockUserStore{
		FindAllFunc: func(ctx context.Context) ([]entity.User, error) { return want, nil },
	}

	uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
	got, err := uc.List(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 users, got %d", len(got))
	}
}

func TestUsersUsecase_CheckDuplicateEmail(t *testing.T) {
	t.Run("free email passes", func(t *testing.T) {
		uc := newUsecase(&mockUserStore{}, &mockConfirmationIssuer{}, &mockMailer{})
		if err := uc.CheckDuplicateEmail(context.Background(), "free@example.com"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("taken email fails", func(t *testing.T) {
		store := &mockUserStore{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email}, nil
			},
		}
		uc := newUsecase(store, &mockConfirmationIssuer{}, &mockMailer{})
		if err := uc.CheckDuplicateEmail(context.Background(), "taken@example.com"); !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("expected ErrDuplicateEmail, got %v", err)
		}
	})
}
