package impl

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/usecase"
)

func newRoleFixture() (usecase.RoleUsecase, *fakeRoleRepo) {
	roleRepo := newFakeRoleRepo()
	svc := NewRoleService(RoleServiceParams{
		RoleRepo: roleRepo,
		Logger:   slog.Default(),
	})

	return svc, roleRepo
}

func TestRoleService_CreateAndGet(t *testing.T) {
	svc, _ := newRoleFixture()

	role, err := svc.CreateRole(context.Background(), &usecase.CreateRoleInput{
		RoleName:        "admin",
		RoleDescription: "full access",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, role.ID)

	found, err := svc.GetRole(context.Background(), role.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", found.RoleName)

	byName, err := svc.GetRoleByName(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, role.ID, byName.ID)
}

func TestRoleService_CreateRolesBulk(t *testing.T) {
	svc, _ := newRoleFixture()

	roles, err := svc.CreateRoles(context.Background(), []*usecase.CreateRoleInput{
		{RoleName: "admin"},
		{RoleName: "editor"},
		{RoleName: "viewer"},
	})
	require.NoError(t, err)
	require.Len(t, roles, 3)
	for _, role := range roles {
		assert.NotEqual(t, uuid.Nil, role.ID)
	}
}

func TestRoleService_ListRolesPagination(t *testing.T) {
	svc, _ := newRoleFixture()

	inputs := make([]*usecase.CreateRoleInput, 0, 12)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		inputs = append(inputs, &usecase.CreateRoleInput{RoleName: name})
	}
	_, err := svc.CreateRoles(context.Background(), inputs)
	require.NoError(t, err)

	page, err := svc.ListRoles(context.Background(), usecase.ListInput{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, int64(12), page.TotalRecords)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Records, 5)
	assert.Equal(t, "f", page.Records[0].RoleName)
	assert.Equal(t, "j", page.Records[4].RoleName)
}

func TestRoleService_UpdateRolePartial(t *testing.T) {
	svc, _ := newRoleFixture()

	role, err := svc.CreateRole(context.Background(), &usecase.CreateRoleInput{
		RoleName:        "admin",
		RoleDescription: "full access",
	})
	require.NoError(t, err)

	newDescription := "administrator"
	updated, err := svc.UpdateRole(context.Background(), role.ID, &usecase.UpdateRoleInput{
		RoleDescription: &newDescription,
	})
	require.NoError(t, err)

	// Only the provided field changes.
	assert.Equal(t, "admin", updated.RoleName)
	assert.Equal(t, "administrator", updated.RoleDescription)
}

func TestRoleService_UpdateRolesPairsByID(t *testing.T) {
	svc, _ := newRoleFixture()

	created, err := svc.CreateRoles(context.Background(), []*usecase.CreateRoleInput{
		{RoleName: "admin"},
		{RoleName: "editor"},
	})
	require.NoError(t, err)

	descA := "first"
	descB := "second"
	updated, err := svc.UpdateRoles(context.Background(), []*usecase.BulkUpdateRoleInput{
		{ID: created[1].ID, Update: usecase.UpdateRoleInput{RoleDescription: &descB}},
		{ID: created[0].ID, Update: usecase.UpdateRoleInput{RoleDescription: &descA}},
		{ID: uuid.New(), Update: usecase.UpdateRoleInput{RoleDescription: &descA}},
	})
	require.NoError(t, err)

	// Each change lands on the role named by its id; the unknown id is skipped.
	require.Len(t, updated, 2)
	byID := map[uuid.UUID]string{}
	for _, role := range updated {
		byID[role.ID] = role.RoleDescription
	}
	assert.Equal(t, "first", byID[created[0].ID])
	assert.Equal(t, "second", byID[created[1].ID])
}

func TestRoleService_DeleteRoles(t *testing.T) {
	svc, _ := newRoleFixture()

	created, err := svc.CreateRoles(context.Background(), []*usecase.CreateRoleInput{
		{RoleName: "admin"},
		{RoleName: "editor"},
	})
	require.NoError(t, err)

	// Missing ids are ignored; existing ones are removed.
	err = svc.DeleteRoles(context.Background(), []uuid.UUID{created[0].ID, uuid.New()})
	require.NoError(t, err)

	_, err = svc.GetRole(context.Background(), created[0].ID)
	assert.Error(t, err)

	_, err = svc.GetRole(context.Background(), created[1].ID)
	assert.NoError(t, err)
}

func TestRoleService_MissingRoleMapsToNotFound(t *testing.T) {
	svc, _ := newRoleFixture()
	missing := uuid.New()
	desc := "updated"

	_, err := svc.GetRole(context.Background(), missing)
	require.ErrorIs(t, err, domainerrors.ErrRoleNotFound)

	_, err = svc.GetRoleByName(context.Background(), "ghost")
	require.ErrorIs(t, err, domainerrors.ErrRoleNotFound)

	_, err = svc.UpdateRole(context.Background(), missing, &usecase.UpdateRoleInput{RoleDescription: &desc})
	require.ErrorIs(t, err, domainerrors.ErrRoleNotFound)

	err = svc.DeleteRole(context.Background(), missing)
	require.ErrorIs(t, err, domainerrors.ErrRoleNotFound)

	// The wrapped error must still surface as an AppError so the HTTP
	// error handler renders 404 instead of a generic 500.
	_, err = svc.GetRole(context.Background(), missing)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "ROLE_NOT_FOUND", appErr.ErrorCode())
}

func TestRoleService_UnknownSearchColumnIsValidationError(t *testing.T) {
	svc, _ := newRoleFixture()

	_, err := svc.ListRoles(context.Background(), usecase.ListInput{
		SearchBy:    "password",
		SearchQuery: "x",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode())
}
