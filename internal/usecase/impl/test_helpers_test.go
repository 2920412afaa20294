package impl

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"stencil/internal/domain/entity"
	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/domain/repository"
	"stencil/internal/domain/service"

	"github.com/google/uuid"
)

// --- in-memory repositories ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) add(user *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user

	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repository.ErrAmbiguousMatch
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == login || user.Email == login {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByIDAndContactNo(_ context.Context, id uuid.UUID, contactNo string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.ContactNo != contactNo {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) List(_ context.Context, query repository.PageQuery) (*repository.Page[*entity.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })

	return paginate(all, query), nil
}

func (r *fakeUserRepo) UpdateByID(_ context.Context, id uuid.UUID, changes map[string]any) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	for column, value := range changes {
		switch column {
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "contact_no":
			user.ContactNo = value.(string)
		case "address":
			user.Address = value.(string)
		case "city":
			user.City = value.(string)
		case "state":
			user.State = value.(string)
		case "country":
			user.Country = value.(string)
		case "postal_code":
			user.PostalCode = value.(string)
		case "profile_image_path":
			user.ProfileImagePath = value.(string)
		case "is_active":
			user.IsActive = value.(bool)
		}
	}
	user.UpdatedAt = time.Now()
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash

	return nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles []*entity.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{}
}

func (r *fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.roles {
		if existing.RoleName == role.RoleName {
			return repository.ErrAmbiguousMatch
		}
	}

	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	role.CreatedAt = time.Now()
	role.UpdatedAt = role.CreatedAt
	clone := *role
	r.roles = append(r.roles, &clone)

	return nil
}

func (r *fakeRoleRepo) CreateBulk(ctx context.Context, roles []*entity.Role) error {
	for _, role := range roles {
		if err := r.Create(ctx, role); err != nil {
			return err
		}
	}

	return nil
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, role := range r.roles {
		if role.ID == id {
			clone := *role

			return &clone, nil
		}
	}

	return nil, repository.ErrRoleNotFound
}

func (r *fakeRoleRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var found []*entity.Role
	for _, role := range r.roles {
		if _, ok := wanted[role.ID]; ok {
			clone := *role
			found = append(found, &clone)
		}
	}

	return found, nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, role := range r.roles {
		if role.RoleName == name {
			clone := *role

			return &clone, nil
		}
	}

	return nil, repository.ErrRoleNotFound
}

func (r *fakeRoleRepo) List(_ context.Context, query repository.PageQuery) (*repository.Page[*entity.Role], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if query.SearchBy != "" && query.SearchBy != "role_name" && query.SearchBy != "role_description" {
		return nil, repository.ErrUnknownColumn
	}

	all := make([]*entity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		if query.SearchBy == "role_name" && query.SearchQuery != "" &&
			!strings.Contains(strings.ToLower(role.RoleName), strings.ToLower(query.SearchQuery)) {
			continue
		}
		clone := *role
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		if query.Desc {
			return all[i].RoleName > all[j].RoleName
		}

		return all[i].RoleName < all[j].RoleName
	})

	return paginate(all, query), nil
}

func (r *fakeRoleRepo) UpdateByID(_ context.Context, id uuid.UUID, changes map[string]any) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.applyChanges(id, changes)
}

func (r *fakeRoleRepo) applyChanges(id uuid.UUID, changes map[string]any) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.ID != id {
			continue
		}

		for column, value := range changes {
			switch column {
			case "role_name":
				role.RoleName = value.(string)
			case "role_description":
				role.RoleDescription = value.(string)
			}
		}
		role.UpdatedAt = time.Now()
		clone := *role

		return &clone, nil
	}

	return nil, repository.ErrRoleNotFound
}

func (r *fakeRoleRepo) UpdateBulk(_ context.Context, changes []repository.BulkChange) ([]*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated []*entity.Role
	for _, change := range changes {
		role, err := r.applyChanges(change.ID, change.Changes)
		if err != nil {
			continue // missing ids are skipped
		}
		updated = append(updated, role)
	}

	return updated, nil
}

func (r *fakeRoleRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, role := range r.roles {
		if role.ID == id {
			r.roles = append(r.roles[:i], r.roles[i+1:]...)

			return nil
		}
	}

	return repository.ErrRoleNotFound
}

func (r *fakeRoleRepo) DeleteBulk(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		_ = r.DeleteByID(ctx, id)
	}

	return nil
}

type fakeOTPRepo struct {
	mu      sync.Mutex
	records map[string]*entity.OTP
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{records: make(map[string]*entity.OTP)}
}

func otpKey(userID uuid.UUID, purpose entity.OTPPurpose) string {
	return userID.String() + "/" + purpose.String()
}

func (r *fakeOTPRepo) FindByUserAndPurpose(_ context.Context, userID uuid.UUID, purpose entity.OTPPurpose) (*entity.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[otpKey(userID, purpose)]
	if !ok {
		return nil, repository.ErrOTPNotFound
	}
	clone := *record

	return &clone, nil
}

func (r *fakeOTPRepo) Upsert(_ context.Context, otp *entity.OTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := otpKey(otp.UserID, otp.Purpose)
	if existing, ok := r.records[key]; ok {
		existing.Code = otp.Code
		existing.Expiry = otp.Expiry
		existing.IsVerified = otp.IsVerified
		existing.UpdatedAt = time.Now()
		*otp = *existing

		return nil
	}

	otp.ID = uuid.New()
	otp.CreatedAt = time.Now()
	otp.UpdatedAt = otp.CreatedAt
	clone := *otp
	r.records[key] = &clone

	return nil
}

func (r *fakeOTPRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.ID == id {
			record.IsVerified = true
			record.Expiry = nil

			return nil
		}
	}

	return repository.ErrOTPNotFound
}

// --- transaction manager ---

// fakeTxManager executes the callback directly against the live fakes.
type fakeTxManager struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	otpRepo  repository.OTPRepository
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm)
}

func (tm *fakeTxManager) RoleRepo() repository.RoleRepository { return tm.roleRepo }
func (tm *fakeTxManager) UserRepo() repository.UserRepository { return tm.userRepo }
func (tm *fakeTxManager) OTPRepo() repository.OTPRepository   { return tm.otpRepo }

// --- domain services ---

// fakeHasher avoids bcrypt cost in tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

// fakeTokenService issues deterministic token strings.
type fakeTokenService struct {
	mu     sync.Mutex
	tokens map[string]*service.VerificationClaims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{tokens: make(map[string]*service.VerificationClaims)}
}

func (s *fakeTokenService) GenerateTokens(userID uuid.UUID, _, _ string) (string, string, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (s *fakeTokenService) ValidateToken(token string) (*service.Claims, error) {
	return parseFakeToken(token, "access-")
}

func (s *fakeTokenService) ValidateRefreshToken(token string) (*service.Claims, error) {
	return parseFakeToken(token, "refresh-")
}

func parseFakeToken(token, prefix string) (*service.Claims, error) {
	if !strings.HasPrefix(token, prefix) {
		return nil, domainerrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(strings.TrimPrefix(token, prefix))
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}

	return &service.Claims{UserID: userID}, nil
}

func (s *fakeTokenService) EncodeVerification(userID uuid.UUID, email, code string, _ time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := "verify-" + uuid.NewString()
	s.tokens[token] = &service.VerificationClaims{UserID: userID, Email: email, Code: code}

	return token, nil
}

func (s *fakeTokenService) DecodeVerification(token string) (*service.VerificationClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, ok := s.tokens[token]
	if !ok || claims == nil {
		return nil, repository.ErrOTPNotFound
	}

	return claims, nil
}

func (s *fakeTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

// issuedToken returns the last token issued for a user, for driving the
// verify flows without parsing emails.
func (s *fakeTokenService) issuedToken(userID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, claims := range s.tokens {
		if claims != nil && claims.UserID == userID {
			return token
		}
	}

	return ""
}

// --- outbound senders ---

type sentEmail struct {
	msg service.EmailMessage
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (s *fakeEmailSender) Send(_ context.Context, msg service.EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, sentEmail{msg: msg})

	return nil
}

func (s *fakeEmailSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sent)
}

type fakeSMSSender struct {
	mu   sync.Mutex
	sent []service.SMSMessage
}

func (s *fakeSMSSender) Send(_ context.Context, msg service.SMSMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, msg)

	return nil
}

func (s *fakeSMSSender) last() (service.SMSMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sent) == 0 {
		return service.SMSMessage{}, false
	}

	return s.sent[len(s.sent)-1], true
}

// syncRunner runs tasks inline so tests observe dispatch effects immediately.
type syncRunner struct{}

func (syncRunner) Go(ctx context.Context, task func(ctx context.Context)) {
	task(ctx)
}

// paginate implements the shared page arithmetic over an in-memory slice.
func paginate[T any](all []T, query repository.PageQuery) *repository.Page[T] {
	total := int64(len(all))
	start := (query.Page - 1) * query.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + query.Limit
	if end > len(all) {
		end = len(all)
	}

	return &repository.Page[T]{
		Page:         query.Page,
		Limit:        query.Limit,
		TotalPages:   repository.TotalPages(total, query.Limit),
		TotalRecords: total,
		Records:      all[start:end],
	}
}
