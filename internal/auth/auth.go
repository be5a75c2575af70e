// Package auth concentra autenticação da equipe e checagem de permissões.
// O perfil Admin não é tratado como caso especial nos pontos de uso: ele
// recebe o conjunto completo de permissões na definição do perfil.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

// Catálogo de permissões do painel administrativo
const (
	PermDashboardRead  = "dashboard.read"
	PermProductsRead   = "products.read"
	PermProductsCreate = "products.create"
	PermProductsUpdate = "products.update"
	PermProductsDelete = "products.delete"
	PermOrdersRead     = "orders.read"
	PermOrdersUpdate   = "orders.update"
	PermStaffRead      = "staff.read"
	PermStaffManage    = "staff.manage"
	PermRolesRead      = "roles.read"
	PermRolesManage    = "roles.manage"
	PermSettingsRead   = "settings.read"
	PermSettingsUpdate = "settings.update"
)

// AllPermissions conjunto completo, concedido ao perfil Admin na sua definição
var AllPermissions = []string{
	PermDashboardRead,
	PermProductsRead, PermProductsCreate, PermProductsUpdate, PermProductsDelete,
	PermOrdersRead, PermOrdersUpdate,
	PermStaffRead, PermStaffManage,
	PermRolesRead, PermRolesManage,
	PermSettingsRead, PermSettingsUpdate,
}

// AdminRoleName nome reservado do perfil com acesso total
const AdminRoleName = "Admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveStaff      = errors.New("staff inactive")
	ErrInvalidSession     = errors.New("invalid session")
)

// Authorizer resolve permissões de um membro da equipe via seu perfil
type Authorizer struct {
	roles repository.RoleRepository
}

func NewAuthorizer(roles repository.RoleRepository) *Authorizer {
	return &Authorizer{roles: roles}
}

// EnsureAdminRole cria (ou repara) o perfil Admin com o conjunto completo de
// permissões. Chamado na subida do serviço para que nenhum ponto de uso
// precise tratar admin como string mágica.
func (a *Authorizer) EnsureAdminRole(ctx context.Context) error {
	role, err := a.roles.GetByName(ctx, AdminRoleName)
	if errors.Is(err, repository.ErrNotFound) {
		return a.roles.Create(ctx, &domain.Role{
			Name:        AdminRoleName,
			Description: "Acesso total ao painel",
			Permissions: AllPermissions,
		})
	}
	if err != nil {
		return err
	}
	if !hasAllPermissions(role.Permissions) {
		role.Permissions = AllPermissions
		return a.roles.Update(ctx, role)
	}
	return nil
}

// hasAllPermissions compara por conteúdo: um perfil com a mesma quantidade de
// permissões erradas ou obsoletas também precisa de reparo
func hasAllPermissions(perms []string) bool {
	if len(perms) != len(AllPermissions) {
		return false
	}
	have := make(map[string]bool, len(perms))
	for _, p := range perms {
		have[p] = true
	}
	for _, p := range AllPermissions {
		if !have[p] {
			return false
		}
	}
	return true
}

// HasPermission verifica se o perfil do membro concede a permissão
func (a *Authorizer) HasPermission(ctx context.Context, staff *domain.Staff, permission string) (bool, error) {
	role, err := a.roles.GetByName(ctx, staff.Role)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, p := range role.Permissions {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

// HasAnyPermission verdadeiro se qualquer uma das permissões for concedida
func (a *Authorizer) HasAnyPermission(ctx context.Context, staff *domain.Staff, permissions ...string) (bool, error) {
	for _, perm := range permissions {
		ok, err := a.HasPermission(ctx, staff, perm)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Session sessão autenticada de um membro da equipe
type Session struct {
	Token string       `json:"token"`
	Staff domain.Staff `json:"staff"`
}

// Service autentica a equipe e mantém sessões em memória
type Service struct {
	staff      repository.StaffRepository
	authorizer *Authorizer

	mu       sync.RWMutex
	sessions map[string]domain.Staff
}

func NewService(staff repository.StaffRepository, authorizer *Authorizer) *Service {
	return &Service{
		staff:      staff,
		authorizer: authorizer,
		sessions:   make(map[string]domain.Staff),
	}
}

func (s *Service) Authorizer() *Authorizer { return s.authorizer }

// Login valida usuário/senha e abre uma sessão com token opaco
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	member, err := s.staff.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if member.Status != "active" {
		return nil, ErrInactiveStaff
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = *member
	s.mu.Unlock()

	return &Session{Token: token, Staff: *member}, nil
}

// Authenticate resolve o membro da equipe dono do token
func (s *Service) Authenticate(token string) (*domain.Staff, error) {
	s.mu.RLock()
	member, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidSession
	}
	cp := member
	return &cp, nil
}

// Logout encerra a sessão; token desconhecido é ignorado
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// HashPassword gera o hash bcrypt para armazenamento
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
