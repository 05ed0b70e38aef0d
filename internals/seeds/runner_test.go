package seeds_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "reflectify_backend/internals/databases"
	"reflectify_backend/internals/databases/repository"
	"reflectify_backend/internals/seeds"
)

func counts(t *testing.T, st *database.Stores) map[string]int64 {
	t.Helper()
	ctx := context.Background()
	out := map[string]int64{}
	var err error
	all := repository.Filter{}
	out["admins"], err = st.Admins.Count(ctx, all)
	require.NoError(t, err)
	out["departments"], err = st.Departments.Count(ctx, all)
	require.NoError(t, err)
	out["faculties"], err = st.Faculties.Count(ctx, all)
	require.NoError(t, err)
	out["semesters"], err = st.Semesters.Count(ctx, all)
	require.NoError(t, err)
	out["subjects"], err = st.Subjects.Count(ctx, all)
	require.NoError(t, err)
	out["forms"], err = st.Forms.Count(ctx, all)
	require.NoError(t, err)
	return out
}

func TestRunAllSeedsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := database.NewMemoryStores()

	require.NoError(t, seeds.RunAllSeeds(ctx, st, seeds.Data))
	first := counts(t, st)
	assert.EqualValues(t, 2, first["admins"])
	assert.GreaterOrEqual(t, first["departments"], int64(2))
	assert.Positive(t, first["faculties"])
	assert.Positive(t, first["subjects"])
	assert.Equal(t, first["semesters"], first["forms"], "one sample form per semester")

	require.NoError(t, seeds.RunAllSeeds(ctx, st, seeds.Data))
	assert.Equal(t, first, counts(t, st))
}
