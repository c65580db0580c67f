package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	queries []string
	err     error
}

func (r *recordingExecutor) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	r.queries = append(r.queries, query)
	return nil, r.err
}

func TestApplyPostgres_RunsUpSectionOnly(t *testing.T) {
	exec := &recordingExecutor{}

	require.NoError(t, ApplyPostgres(context.Background(), exec))

	require.Len(t, exec.queries, 1)
	assert.Contains(t, exec.queries[0], "CREATE TABLE IF NOT EXISTS sites")
	assert.Contains(t, exec.queries[0], "CREATE TABLE IF NOT EXISTS bookings")
	assert.NotContains(t, exec.queries[0], "DROP TABLE")
}

func TestApplyPostgres_Error(t *testing.T) {
	exec := &recordingExecutor{err: errors.New("permission denied")}

	err := ApplyPostgres(context.Background(), exec)
	assert.ErrorContains(t, err, "0001_init.sql")
}
