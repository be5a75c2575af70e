package service

import (
	"context"
	"errors"

	"github.com/lucaspascoa/novoteste/internal/auth"
	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

var (
	ErrUsernameTaken     = errors.New("username already taken")
	ErrProtectedRole     = errors.New("role is protected")
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownPermission = errors.New("unknown permission")
)

// AdminService cadastros do painel: equipe, perfis, categorias, zonas e
// configuração da loja.
type AdminService struct {
	staff      repository.StaffRepository
	roles      repository.RoleRepository
	categories repository.CategoryRepository
	zones      repository.DeliveryZoneRepository
	config     repository.StoreConfigRepository
}

func NewAdminService(
	staff repository.StaffRepository,
	roles repository.RoleRepository,
	categories repository.CategoryRepository,
	zones repository.DeliveryZoneRepository,
	config repository.StoreConfigRepository,
) *AdminService {
	return &AdminService{staff: staff, roles: roles, categories: categories, zones: zones, config: config}
}

// CreateStaffInput dados do formulário de novo membro
type CreateStaffInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

func (s *AdminService) CreateStaff(ctx context.Context, in CreateStaffInput) (*domain.Staff, error) {
	if in.Username == "" || in.Password == "" || in.FullName == "" || in.Role == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.roles.GetByName(ctx, in.Role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownRole
		}
		return nil, err
	}
	if _, err := s.staff.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	st := domain.Staff{
		Username:     in.Username,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         in.Role,
		Status:       "active",
	}
	if err := s.staff.Create(ctx, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// UpdateStaffInput campos editáveis; Password vazio mantém a senha atual
type UpdateStaffInput struct {
	FullName string
	Role     string
	Status   string
	Password string
}

func (s *AdminService) UpdateStaff(ctx context.Context, id string, in UpdateStaffInput) (*domain.Staff, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	st, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != "" {
		st.FullName = in.FullName
	}
	if in.Role != "" {
		if _, err := s.roles.GetByName(ctx, in.Role); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUnknownRole
			}
			return nil, err
		}
		st.Role = in.Role
	}
	if in.Status != "" {
		st.Status = in.Status
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		st.PasswordHash = hash
	}
	if err := s.staff.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *AdminService) DeleteStaff(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.staff.Delete(ctx, id)
}

func (s *AdminService) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return s.staff.List(ctx)
}

// CreateRole valida cada permissão contra o conjunto conhecido
func (s *AdminService) CreateRole(ctx context.Context, r domain.Role) (*domain.Role, error) {
	if r.Name == "" {
		return nil, ErrInvalidInput
	}
	if r.Name == auth.AdminRoleName {
		return nil, ErrProtectedRole
	}
	if err := validatePermissions(r.Permissions); err != nil {
		return nil, err
	}
	cp := r
	if err := s.roles.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *AdminService) UpdateRole(ctx context.Context, r domain.Role) (*domain.Role, error) {
	if r.ID == "" || r.Name == "" {
		return nil, ErrInvalidInput
	}
	if r.Name == auth.AdminRoleName {
		return nil, ErrProtectedRole
	}
	if err := validatePermissions(r.Permissions); err != nil {
		return nil, err
	}
	cp := r
	if err := s.roles.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// DeleteRole recusa remover o perfil Admin
func (s *AdminService) DeleteRole(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if r.ID == id && r.Name == auth.AdminRoleName {
			return ErrProtectedRole
		}
	}
	return s.roles.Delete(ctx, id)
}

func (s *AdminService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

func validatePermissions(perms []string) error {
	known := map[string]bool{}
	for _, p := range auth.AllPermissions {
		known[p] = true
	}
	for _, p := range perms {
		if !known[p] {
			return ErrUnknownPermission
		}
	}
	return nil
}

func (s *AdminService) CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.Name == "" {
		return nil, ErrInvalidInput
	}
	cp := c
	if err := s.categories.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.ID == "" || c.Name == "" {
		return nil, ErrInvalidInput
	}
	cp := c
	if err := s.categories.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.categories.Delete(ctx, id)
}

// ListCategories ordenadas pelo sort_order do cadastro
func (s *AdminService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *AdminService) CreateZone(ctx context.Context, z domain.DeliveryZone) (*domain.DeliveryZone, error) {
	if z.Neighborhood == "" || z.Fee < 0 {
		return nil, ErrInvalidInput
	}
	cp := z
	if err := s.zones.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *AdminService) UpdateZone(ctx context.Context, z domain.DeliveryZone) (*domain.DeliveryZone, error) {
	if z.ID == "" || z.Neighborhood == "" || z.Fee < 0 {
		return nil, ErrInvalidInput
	}
	cp := z
	if err := s.zones.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *AdminService) DeleteZone(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.zones.Delete(ctx, id)
}

func (s *AdminService) ListZones(ctx context.Context) ([]domain.DeliveryZone, error) {
	return s.zones.List(ctx)
}

// GetConfig devolve a configuração vigente (ErrNotFound se nunca salva)
func (s *AdminService) GetConfig(ctx context.Context) (*domain.StoreConfig, error) {
	return s.config.Get(ctx)
}

func (s *AdminService) SaveConfig(ctx context.Context, cfg domain.StoreConfig) (*domain.StoreConfig, error) {
	if cfg.StoreName == "" {
		return nil, ErrInvalidInput
	}
	cp := cfg
	if err := s.config.Save(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}
