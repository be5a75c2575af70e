package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
)

func setup(t *testing.T) (*Service, *Authorizer, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	authorizer := NewAuthorizer(repository.NewMemoryRoles(store))
	svc := NewService(repository.NewMemoryStaff(store), authorizer)
	return svc, authorizer, store
}

func seedStaff(t *testing.T, store *repository.MemoryStore, username, password, role, status string) domain.Staff {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	s := domain.Staff{Username: username, PasswordHash: hash, FullName: username, Role: role, Status: status}
	require.NoError(t, repository.NewMemoryStaff(store).Create(context.Background(), &s))
	return s
}

func TestEnsureAdminRole_GrantsFullSetAtDefinition(t *testing.T) {
	_, authorizer, store := setup(t)
	ctx := context.Background()

	require.NoError(t, authorizer.EnsureAdminRole(ctx))

	role, err := repository.NewMemoryRoles(store).GetByName(ctx, AdminRoleName)
	require.NoError(t, err)
	assert.ElementsMatch(t, AllPermissions, role.Permissions)

	// perfil degradado é reparado na próxima subida
	role.Permissions = []string{PermDashboardRead}
	require.NoError(t, repository.NewMemoryRoles(store).Update(ctx, role))
	require.NoError(t, authorizer.EnsureAdminRole(ctx))
	role, _ = repository.NewMemoryRoles(store).GetByName(ctx, AdminRoleName)
	assert.ElementsMatch(t, AllPermissions, role.Permissions)

	// mesmo tamanho com conteúdo errado também é reparado
	stale := make([]string, len(AllPermissions))
	for i := range stale {
		stale[i] = fmt.Sprintf("permissao.obsoleta.%d", i)
	}
	role.Permissions = stale
	require.NoError(t, repository.NewMemoryRoles(store).Update(ctx, role))
	require.NoError(t, authorizer.EnsureAdminRole(ctx))
	role, _ = repository.NewMemoryRoles(store).GetByName(ctx, AdminRoleName)
	assert.ElementsMatch(t, AllPermissions, role.Permissions)
}

func TestHasPermission_NoAdminSpecialCase(t *testing.T) {
	_, authorizer, store := setup(t)
	ctx := context.Background()
	require.NoError(t, authorizer.EnsureAdminRole(ctx))
	roles := repository.NewMemoryRoles(store)
	require.NoError(t, roles.Create(ctx, &domain.Role{
		Name:        "Vendedor",
		Permissions: []string{PermProductsRead, PermOrdersRead, PermOrdersUpdate},
	}))

	admin := &domain.Staff{Role: AdminRoleName}
	vendedor := &domain.Staff{Role: "Vendedor"}
	semPerfil := &domain.Staff{Role: "Fantasma"}

	// admin passa por pertencer ao conjunto completo, não por comparação de nome
	for _, perm := range AllPermissions {
		ok, err := authorizer.HasPermission(ctx, admin, perm)
		require.NoError(t, err)
		assert.True(t, ok, perm)
	}

	ok, _ := authorizer.HasPermission(ctx, vendedor, PermOrdersUpdate)
	assert.True(t, ok)
	ok, _ = authorizer.HasPermission(ctx, vendedor, PermRolesManage)
	assert.False(t, ok)

	ok, err := authorizer.HasPermission(ctx, semPerfil, PermDashboardRead)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasAnyPermission(t *testing.T) {
	_, authorizer, store := setup(t)
	ctx := context.Background()
	require.NoError(t, repository.NewMemoryRoles(store).Create(ctx, &domain.Role{
		Name:        "Estoquista",
		Permissions: []string{PermProductsRead, PermProductsUpdate},
	}))
	member := &domain.Staff{Role: "Estoquista"}

	ok, err := authorizer.HasAnyPermission(ctx, member, PermRolesManage, PermProductsUpdate)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = authorizer.HasAnyPermission(ctx, member, PermRolesManage, PermStaffManage)
	assert.False(t, ok)
}

func TestLogin_SessionLifecycle(t *testing.T) {
	svc, _, store := setup(t)
	ctx := context.Background()
	seedStaff(t, store, "maria", "segredo123", AdminRoleName, "active")

	sess, err := svc.Login(ctx, "maria", "segredo123")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	member, err := svc.Authenticate(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "maria", member.Username)

	svc.Logout(sess.Token)
	_, err = svc.Authenticate(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestLogin_Failures(t *testing.T) {
	svc, _, store := setup(t)
	ctx := context.Background()
	seedStaff(t, store, "maria", "segredo123", AdminRoleName, "active")
	seedStaff(t, store, "jose", "outrasenha", AdminRoleName, "inactive")

	_, err := svc.Login(ctx, "maria", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "desconhecido", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "jose", "outrasenha")
	assert.ErrorIs(t, err, ErrInactiveStaff)
}
