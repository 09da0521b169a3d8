package postgres_test

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"contacts/internal/adapters/postgres"
	"contacts/internal/domain"
	"contacts/internal/platform/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, resetDatabase(ctx, pool))

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	require.NoError(t, db.ApplySchema(ctx, pool))

	pgContainer = pg
	pgConnStr = dsn
}

func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `truncate table contacts restart identity`); err != nil {
		return err
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func fields(name, email string) domain.ContactFields {
	return domain.ContactFields{Name: name, Email: email}
}

// ---------- Create ----------

func TestContactRepository_Create_Success(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	in := domain.ContactFields{
		Name:  "Ana",
		Email: "ana@x.com",
		Phone: ptr("+55 11 99999-0000"),
		Salary: domain.Salary{
			Base: ptr(1000.0),
			USD:  ptr(200.0),
			EUR:  ptr(181.82),
		},
	}

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, "Ana", created.Name)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "ana@x.com", got.Email)
	require.Equal(t, "+55 11 99999-0000", *got.Phone)
	require.True(t, got.CreatedAt.Equal(created.CreatedAt))
	require.InDelta(t, 1000.0, *got.Salary.Base, 1e-9)
	require.InDelta(t, 200.0, *got.Salary.USD, 1e-9)
	require.InDelta(t, 181.82, *got.Salary.EUR, 1e-9)
}

func TestContactRepository_Create_NullSalaryAndPhone(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, fields("Bruno", "bruno@x.com"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, got.Phone)
	require.Nil(t, got.Salary.Base)
	require.Nil(t, got.Salary.USD)
	require.Nil(t, got.Salary.EUR)
}

func TestContactRepository_Create_DistinctIDs(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	seen := make(map[int64]struct{})
	for i := 0; i < 5; i++ {
		c, err := repo.Create(ctx, fields(fmt.Sprintf("User %d", i), fmt.Sprintf("user%d@x.com", i)))
		require.NoError(t, err)
		_, dup := seen[c.ID]
		require.False(t, dup)
		seen[c.ID] = struct{}{}
	}
}

func TestContactRepository_Create_DuplicateEmail(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, fields("Ana", "ana@x.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, fields("Another Ana", "ana@x.com"))
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from contacts where email = 'ana@x.com'`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestContactRepository_Create_ConcurrentSameEmail_OneWins(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	const writers = 8
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, fields(fmt.Sprintf("Writer %d", i), "race@x.com"))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, domain.ErrDuplicateEmail)
			dup++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, writers-1, dup)
}

func TestContactRepository_Create_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Create(ctx, fields("Ana", "ana@x.com"))
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrDuplicateEmail)
}

// ---------- Update ----------

func TestContactRepository_Update_RewritesMutableFields(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.ContactFields{
		Name:   "Ana",
		Email:  "ana@x.com",
		Phone:  ptr("123"),
		Salary: domain.Salary{Base: ptr(1000.0), USD: ptr(200.0), EUR: ptr(181.82)},
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.ContactFields{Name: "Ana Maria", Email: "ana.maria@x.com"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", got.Name)
	require.Equal(t, "ana.maria@x.com", got.Email)
	require.Nil(t, got.Phone)
	require.Nil(t, got.Salary.Base)
	require.Nil(t, got.Salary.USD)
	require.Nil(t, got.Salary.EUR)
	require.True(t, got.CreatedAt.Equal(created.CreatedAt))
}

func TestContactRepository_Update_KeepOwnEmail(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, fields("Ana", "ana@x.com"))
	require.NoError(t, err)

	_, err = repo.Update(ctx, created.ID, fields("Ana B.", "ana@x.com"))
	require.NoError(t, err)
}

func TestContactRepository_Update_NotFound_NoRowCreated(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	_, err := repo.Update(ctx, 42, fields("Ghost", "ghost@x.com"))
	require.ErrorIs(t, err, domain.ErrContactNotFound)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from contacts`).Scan(&count))
	require.Zero(t, count)
}

func TestContactRepository_Update_DuplicateEmail_LeavesRowUntouched(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, fields("Ana", "ana@x.com"))
	require.NoError(t, err)
	bruno, err := repo.Create(ctx, fields("Bruno", "bruno@x.com"))
	require.NoError(t, err)

	_, err = repo.Update(ctx, bruno.ID, fields("Bruno Renamed", "ana@x.com"))
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	got, err := repo.GetByID(ctx, bruno.ID)
	require.NoError(t, err)
	require.Equal(t, "Bruno", got.Name)
	require.Equal(t, "bruno@x.com", got.Email)
}

// ---------- Delete / GetByID ----------

func TestContactRepository_Delete(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, fields("Ana", "ana@x.com"))
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = repo.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrContactNotFound)

	page, err := repo.List(ctx, "", 1, 8)
	require.NoError(t, err)
	require.Zero(t, page.Total)

	removed, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, removed)
}

func TestContactRepository_GetByID_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.GetByID(ctx, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrContactNotFound)
}

// ---------- List ----------

func TestContactRepository_List_Pagination(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	// inserted in reverse so that id order differs from name order
	for i := 20; i >= 1; i-- {
		_, err := repo.Create(ctx, fields(fmt.Sprintf("Contact %02d", i), fmt.Sprintf("c%02d@x.com", i)))
		require.NoError(t, err)
	}

	wantSizes := []int{8, 8, 4, 0}
	var names []string
	for i, want := range wantSizes {
		page, err := repo.List(ctx, "", i+1, 8)
		require.NoError(t, err)
		require.Len(t, page.Contacts, want)
		require.Equal(t, 20, page.Total)
		require.Equal(t, 3, page.TotalPages)
		require.Equal(t, i+1, page.Page)
		require.Equal(t, 8, page.Limit)
		for _, c := range page.Contacts {
			names = append(names, c.Name)
		}
	}

	require.Len(t, names, 20)
	for i, name := range names {
		require.Equal(t, fmt.Sprintf("Contact %02d", i+1), name)
	}
}

func TestContactRepository_List_HugePageAndLimit(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := repo.Create(ctx, fields(fmt.Sprintf("Contact %02d", i), fmt.Sprintf("c%02d@x.com", i)))
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, "", math.MaxInt, 8)
	require.NoError(t, err)
	require.Empty(t, page.Contacts)
	require.Equal(t, 5, page.Total)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, math.MaxInt, page.Page)

	page, err = repo.List(ctx, "", 1, math.MaxInt)
	require.NoError(t, err)
	require.Len(t, page.Contacts, 5)
	require.Equal(t, 5, page.Total)
	require.Equal(t, 1, page.TotalPages)

	page, err = repo.List(ctx, "", 2, math.MaxInt)
	require.NoError(t, err)
	require.Empty(t, page.Contacts)
	require.Equal(t, 5, page.Total)
}

func TestContactRepository_List_TiesBrokenByID(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	first, err := repo.Create(ctx, fields("Same", "a@x.com"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, fields("Same", "b@x.com"))
	require.NoError(t, err)

	page, err := repo.List(ctx, "", 1, 8)
	require.NoError(t, err)
	require.Len(t, page.Contacts, 2)
	require.Equal(t, first.ID, page.Contacts[0].ID)
	require.Equal(t, second.ID, page.Contacts[1].ID)
}

func TestContactRepository_List_SearchCaseInsensitiveNameOrEmail(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	for _, f := range []domain.ContactFields{
		fields("Ana Souza", "ana@x.com"),
		fields("Bruno", "bruno@ANAlytics.io"),
		fields("Carla", "carla@x.com"),
	} {
		_, err := repo.Create(ctx, f)
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, "aNa", 1, 8)
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	require.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Contacts, 2)
	require.Equal(t, "Ana Souza", page.Contacts[0].Name)
	require.Equal(t, "Bruno", page.Contacts[1].Name)

	page, err = repo.List(ctx, "nobody", 1, 8)
	require.NoError(t, err)
	require.Zero(t, page.Total)
	require.Zero(t, page.TotalPages)
	require.NotNil(t, page.Contacts)
	require.Empty(t, page.Contacts)
}

func TestContactRepository_List_SearchWildcardsMatchLiterally(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, fields("100% Ana", "ana@x.com"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, fields("Bruno", "bruno_b@x.com"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, fields("Carla", "carla@x.com"))
	require.NoError(t, err)

	page, err := repo.List(ctx, "%", 1, 8)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "100% Ana", page.Contacts[0].Name)

	page, err = repo.List(ctx, "_", 1, 8)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Bruno", page.Contacts[0].Name)
}

func TestContactRepository_List_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewContactRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.List(ctx, "", 1, 8)
	require.Error(t, err)
}
