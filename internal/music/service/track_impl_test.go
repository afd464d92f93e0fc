package service_test

import (
	"context"
	"mime/multipart"
	"testing"

	repoMocks "music-store-server/internal/music/repository/mocks"
	"music-store-server/internal/music/service"
	"music-store-server/internal/shared/models"
	storageMocks "music-store-server/internal/shared/storage/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTrackService(t *testing.T) (service.TrackService, *repoMocks.TrackRepository, *storageMocks.FileStore) {
	t.Helper()
	tracks := new(repoMocks.TrackRepository)
	files := new(storageMocks.FileStore)
	return service.NewTrackService(tracks, files, zap.NewNop()), tracks, files
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func TestCreateTrack(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("Successful creation", func(t *testing.T) {
		svc, tracks, files := newTrackService(t)

		files.On("Save", mock.Anything, "audio").Return("audio/a.mp3", nil).Once()
		files.On("Save", mock.Anything, "image").Return("image/p.jpg", nil).Once()
		tracks.On("CreateTrack", ctx, mock.MatchedBy(func(tr *models.Track) bool {
			assert.Equal(t, "Intro", tr.Name)
			assert.Equal(t, "Artist", tr.Artist)
			assert.Equal(t, "audio/a.mp3", tr.AudioPath)
			assert.Equal(t, "image/p.jpg", tr.PicturePath)
			assert.Equal(t, ownerID, tr.AddedBy)
			return true
		})).Return(nil).Once()

		track, err := svc.Create(ctx, service.CreateTrackInput{
			Name:    " Intro ",
			Artist:  " Artist ",
			Audio:   fileHeader("a.mp3"),
			Picture: fileHeader("p.jpg"),
			AddedBy: ownerID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Intro", track.Name)
		files.AssertExpectations(t)
		tracks.AssertExpectations(t)
	})

	t.Run("Insert failure removes stored files", func(t *testing.T) {
		svc, tracks, files := newTrackService(t)

		files.On("Save", mock.Anything, "audio").Return("audio/a.mp3", nil).Once()
		files.On("Save", mock.Anything, "image").Return("image/p.jpg", nil).Once()
		tracks.On("CreateTrack", ctx, mock.Anything).Return(assert.AnError).Once()
		files.On("Remove", "audio/a.mp3").Return(nil).Once()
		files.On("Remove", "image/p.jpg").Return(nil).Once()

		_, err := svc.Create(ctx, service.CreateTrackInput{
			Name:    "Intro",
			Artist:  "Artist",
			Audio:   fileHeader("a.mp3"),
			Picture: fileHeader("p.jpg"),
			AddedBy: ownerID,
		})
		assert.Error(t, err)
		files.AssertExpectations(t)
	})

	t.Run("Picture save failure removes the audio", func(t *testing.T) {
		svc, _, files := newTrackService(t)

		files.On("Save", mock.Anything, "audio").Return("audio/a.mp3", nil).Once()
		files.On("Save", mock.Anything, "image").Return("", assert.AnError).Once()
		files.On("Remove", "audio/a.mp3").Return(nil).Once()

		_, err := svc.Create(ctx, service.CreateTrackInput{
			Name:    "Intro",
			Artist:  "Artist",
			Audio:   fileHeader("a.mp3"),
			Picture: fileHeader("p.jpg"),
			AddedBy: ownerID,
		})
		assert.Error(t, err)
		files.AssertExpectations(t)
	})

	t.Run("Missing files rejected", func(t *testing.T) {
		svc, _, _ := newTrackService(t)

		_, err := svc.Create(ctx, service.CreateTrackInput{Name: "Intro", Artist: "Artist"})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestDeleteTrack(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	trackID := uuid.New()

	stored := &models.Track{
		ID:          trackID,
		Name:        "Intro",
		AddedBy:     ownerID,
		AudioPath:   "audio/a.mp3",
		PicturePath: "image/p.jpg",
	}

	t.Run("Owner deletes the track and files", func(t *testing.T) {
		svc, tracks, files := newTrackService(t)

		tracks.On("GetTrackByID", ctx, trackID).Return(stored, nil).Once()
		tracks.On("DeleteTrack", ctx, trackID).Return(nil).Once()
		files.On("Remove", "audio/a.mp3").Return(nil).Once()
		files.On("Remove", "image/p.jpg").Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, trackID, ownerID))
		files.AssertExpectations(t)
	})

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		svc, tracks, files := newTrackService(t)

		tracks.On("GetTrackByID", ctx, trackID).Return(stored, nil).Once()

		err := svc.Delete(ctx, trackID, uuid.New())
		assert.ErrorIs(t, err, models.ErrForbidden)
		tracks.AssertNotCalled(t, "DeleteTrack", mock.Anything, mock.Anything)
		files.AssertNotCalled(t, "Remove", mock.Anything)
	})

	t.Run("Unknown track", func(t *testing.T) {
		svc, tracks, _ := newTrackService(t)

		tracks.On("GetTrackByID", ctx, trackID).Return(nil, models.ErrTrackNotFound).Once()

		err := svc.Delete(ctx, trackID, ownerID)
		assert.ErrorIs(t, err, models.ErrTrackNotFound)
	})
}

func TestTrackComments(t *testing.T) {
	ctx := context.Background()
	trackID := uuid.New()

	t.Run("Add comment", func(t *testing.T) {
		svc, tracks, _ := newTrackService(t)

		tracks.On("AddComment", ctx, mock.MatchedBy(func(c *models.TrackComment) bool {
			return c.TrackID == trackID && c.UserEmail == "user@example.com" && c.Text == "nice"
		})).Return(nil).Once()

		comment, err := svc.AddComment(ctx, trackID, "user@example.com", " nice ")
		require.NoError(t, err)
		assert.Equal(t, "nice", comment.Text)
	})

	t.Run("Empty text rejected", func(t *testing.T) {
		svc, _, _ := newTrackService(t)

		_, err := svc.AddComment(ctx, trackID, "user@example.com", "  ")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("Comment on missing track", func(t *testing.T) {
		svc, tracks, _ := newTrackService(t)

		tracks.On("AddComment", ctx, mock.Anything).Return(models.ErrTrackNotFound).Once()

		_, err := svc.AddComment(ctx, trackID, "user@example.com", "nice")
		assert.ErrorIs(t, err, models.ErrTrackNotFound)
	})
}

func TestListen(t *testing.T) {
	ctx := context.Background()
	svc, tracks, _ := newTrackService(t)

	trackID := uuid.New()
	tracks.On("IncrementListens", ctx, trackID).Return(nil).Once()

	require.NoError(t, svc.Listen(ctx, trackID))
	tracks.AssertExpectations(t)
}
