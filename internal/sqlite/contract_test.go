package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/repository"
)

func TestContractRepository_CreateAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	first := &dashboard.Contract{ID: "c1", Title: "Sewa Kamera", Parties: "A & B", Date: "2024-09-01", Status: dashboard.StatusActive, CreatedAt: base}
	second := &dashboard.Contract{ID: "c2", Title: "Proyek Web", Parties: "C & D", Date: "2024-09-05", Status: dashboard.StatusActive, CreatedAt: base.Add(time.Hour)}
	other := &dashboard.Contract{ID: "c3", Title: "Lain", Parties: "E & F", Date: "2024-09-02", Status: dashboard.StatusActive, CreatedAt: base}

	require.NoError(t, repo.Create(ctx, "tenant1", second))
	require.NoError(t, repo.Create(ctx, "tenant1", first))
	require.NoError(t, repo.Create(ctx, "tenant2", other))

	list, err := repo.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "c2", list[0].ID)
	require.Equal(t, "c1", list[1].ID)
	require.Equal(t, "tenant1", list[1].TenantID)
	require.Equal(t, dashboard.StatusActive, list[1].Status)
	require.Equal(t, "A & B", list[1].Parties)

	require.ErrorIs(t, repo.Create(ctx, "tenant1", first), repository.ErrConflict)
}

func TestContractRepository_ListEmpty(t *testing.T) {
	db := NewTestDB(t)
	repo := NewContractRepository(db)

	list, err := repo.List(context.Background(), "tenant1")
	require.NoError(t, err)
	require.Empty(t, list)
}
