package service

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/models"
	"github.com/noah-isme/classscore-api/internal/repository"
)

func TestClassroomServiceDefaultCannotBeDeleted(t *testing.T) {
	db := newServiceTestDB(t)
	svc := NewClassroomService(repository.NewClassroomRepository(db), newTestValidator(t), zerolog.New(io.Discard))

	def := models.Classroom{UserID: 1, Name: "기본 학급", IsDefault: true}
	extra := models.Classroom{UserID: 1, Name: "2반"}
	require.NoError(t, db.Create(&def).Error)
	require.NoError(t, db.Create(&extra).Error)

	require.ErrorIs(t, svc.Delete(context.Background(), 1, def.ID), ErrDefaultClassroom)
	require.NoError(t, svc.Delete(context.Background(), 1, extra.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), 1, extra.ID), ErrClassroomNotFound)
}

func TestClassroomServiceSetDefaultMovesFlag(t *testing.T) {
	db := newServiceTestDB(t)
	svc := NewClassroomService(repository.NewClassroomRepository(db), newTestValidator(t), zerolog.New(io.Discard))

	old := models.Classroom{UserID: 1, Name: "기본 학급", IsDefault: true}
	next := models.Classroom{UserID: 1, Name: "2반"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&next).Error)

	resp, err := svc.SetDefault(context.Background(), 1, next.ID)
	require.NoError(t, err)
	require.True(t, resp.IsDefault)

	// The old default is now deletable.
	require.NoError(t, svc.Delete(context.Background(), 1, old.ID))

	_, err = svc.SetDefault(context.Background(), 1, 999)
	require.ErrorIs(t, err, ErrClassroomNotFound)
}

func TestClassroomServiceCreateAndRename(t *testing.T) {
	db := newServiceTestDB(t)
	svc := NewClassroomService(repository.NewClassroomRepository(db), newTestValidator(t), zerolog.New(io.Discard))

	created, err := svc.Create(context.Background(), 1, dto.ClassroomRequest{Name: "1반"})
	require.NoError(t, err)
	require.False(t, created.IsDefault)

	renamed, err := svc.Rename(context.Background(), 1, created.ID, dto.ClassroomRequest{Name: "새 1반"})
	require.NoError(t, err)
	require.Equal(t, "새 1반", renamed.Name)

	_, err = svc.Rename(context.Background(), 2, created.ID, dto.ClassroomRequest{Name: "뺏기"})
	require.ErrorIs(t, err, ErrClassroomNotFound)

	_, err = svc.Create(context.Background(), 1, dto.ClassroomRequest{})
	require.Error(t, err, "blank name fails validation")
}
