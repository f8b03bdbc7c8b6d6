package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/stagenote"
	main "github.com/fwojciec/stagenote/cmd/stagenote"
	"github.com/fwojciec/stagenote/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes record by ID", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		performances := &mock.PerformanceService{
			DeletePerformanceFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       stdout,
			Stderr:       &bytes.Buffer{},
			Performances: performances,
		}

		cmd := &main.DeleteCmd{ID: "performance_1700000000000", Force: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "performance_1700000000000", deletedID)
		assert.Contains(t, stdout.String(), "Deleted")
	})

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		deleteCalled := false
		performances := &mock.PerformanceService{
			DeletePerformanceFn: func(_ context.Context, id string) error {
				deleteCalled = true
				return nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       &bytes.Buffer{},
			Stderr:       stderr,
			Performances: performances,
		}

		err := (&main.DeleteCmd{ID: "performance_1700000000000"}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, stagenote.EINVALID, stagenote.ErrorCode(err))
		assert.False(t, deleteCalled)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports missing record with hint", func(t *testing.T) {
		t.Parallel()

		performances := &mock.PerformanceService{
			DeletePerformanceFn: func(_ context.Context, id string) error {
				return stagenote.Errorf(stagenote.ENOTFOUND, "performance not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       &bytes.Buffer{},
			Stderr:       stderr,
			Performances: performances,
		}

		err := (&main.DeleteCmd{ID: "missing", Force: true}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "not found")
	})
}
