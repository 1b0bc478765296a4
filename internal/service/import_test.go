package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"video_catalog/internal/config"
	"video_catalog/internal/domain"
	"video_catalog/internal/service/mocks"
)

type ImportTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source      *mocks.MockSource
	videos      *mocks.MockVideoStore
	importState *mocks.MockImportStateStore
	publisher   *mocks.MockPublisher

	service *CatalogService
	cfg     config.ImportConfig
	logger  *slog.Logger
}

func (s *ImportTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.source = mocks.NewMockSource(s.ctrl)
	s.videos = mocks.NewMockVideoStore(s.ctrl)
	s.importState = mocks.NewMockImportStateStore(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.cfg = config.ImportConfig{RunTimeout: time.Minute}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewCatalogService(
		s.source,
		s.videos,
		s.importState,
		s.publisher,
		s.logger,
		s.cfg,
	)
}

func (s *ImportTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestImportTestSuite(t *testing.T) {
	suite.Run(t, new(ImportTestSuite))
}

func (s *ImportTestSuite) expectRecordImport(playlistID string) {
	s.importState.EXPECT().Get(gomock.Any(), playlistID).Return(&domain.ImportState{PlaylistID: playlistID}, nil)
	s.importState.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
}

func videoItem(id, title string) domain.PlaylistItem {
	return domain.PlaylistItem{Kind: domain.ItemKindVideo, VideoID: id, Title: title}
}

func watchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func (s *ImportTestSuite) TestImportPlaylist_InvalidURL() {
	stats, err := s.service.ImportPlaylist(context.Background(), "https://example.com/playlist?list=PL42")

	s.ErrorIs(err, domain.ErrInvalidReference)
	s.Nil(stats)
}

func (s *ImportTestSuite) TestImportPlaylist_SinglePage() {
	page := &domain.PlaylistPage{
		Items: []domain.PlaylistItem{
			videoItem("vid1", "First"),
			videoItem("vid2", "Second"),
			{Kind: domain.ItemKindOther},
		},
	}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(page, nil)

	first := &domain.Video{ID: 1, Title: "First", URL: watchURL("vid1")}
	second := &domain.Video{ID: 2, Title: "Second", URL: watchURL("vid2")}
	s.videos.EXPECT().Insert(gomock.Any(), "First", watchURL("vid1"), "").Return(first, true, nil)
	s.videos.EXPECT().Insert(gomock.Any(), "Second", watchURL("vid2"), "").Return(second, true, nil)

	s.publisher.EXPECT().Publish(gomock.Any(), first).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), second).Return(nil)

	s.expectRecordImport("PL42")

	stats, err := s.service.ImportPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL42")

	s.NoError(err)
	s.Equal("PL42", stats.PlaylistID)
	s.Equal(3, stats.Fetched)
	s.Equal(2, stats.Inserted)
	s.Equal(0, stats.Skipped)
}

func (s *ImportTestSuite) TestImportPlaylist_SkipsExisting() {
	page := &domain.PlaylistPage{
		Items: []domain.PlaylistItem{
			videoItem("vid1", "Already there"),
			videoItem("vid2", "Brand new"),
		},
	}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(page, nil)

	inserted := &domain.Video{ID: 2, Title: "Brand new", URL: watchURL("vid2")}
	s.videos.EXPECT().Insert(gomock.Any(), "Already there", watchURL("vid1"), "").Return(nil, false, nil)
	s.videos.EXPECT().Insert(gomock.Any(), "Brand new", watchURL("vid2"), "").Return(inserted, true, nil)

	s.publisher.EXPECT().Publish(gomock.Any(), inserted).Return(nil)

	s.expectRecordImport("PL42")

	stats, err := s.service.ImportPlaylistByID(context.Background(), "PL42")

	s.NoError(err)
	s.Equal(2, stats.Fetched)
	s.Equal(1, stats.Inserted)
	s.Equal(1, stats.Skipped)
}

func (s *ImportTestSuite) TestImportPlaylist_PaginationTerminatesOnEmptyPage() {
	makePage := func(n, offset int, token string) *domain.PlaylistPage {
		page := &domain.PlaylistPage{NextPageToken: token}
		for i := 0; i < n; i++ {
			page.Items = append(page.Items, videoItem(fmt.Sprintf("vid-%d", offset+i), "Video"))
		}
		return page
	}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(makePage(50, 0, "tok-2"), nil)
	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "tok-2").Return(makePage(50, 50, "tok-3"), nil)
	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "tok-3").Return(&domain.PlaylistPage{}, nil)

	s.videos.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any(), "").Return(nil, false, nil).Times(100)

	s.expectRecordImport("PL42")

	stats, err := s.service.ImportPlaylistByID(context.Background(), "PL42")

	s.NoError(err)
	s.Equal(100, stats.Fetched)
	s.Equal(0, stats.Inserted)
	s.Equal(100, stats.Skipped)
}

func (s *ImportTestSuite) TestImportPlaylist_StopsWithoutNextToken() {
	page := &domain.PlaylistPage{
		Items:         []domain.PlaylistItem{videoItem("vid1", "Only")},
		NextPageToken: "",
	}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(page, nil)
	s.videos.EXPECT().Insert(gomock.Any(), "Only", watchURL("vid1"), "").Return(nil, false, nil)

	s.expectRecordImport("PL42")

	stats, err := s.service.ImportPlaylistByID(context.Background(), "PL42")

	s.NoError(err)
	s.Equal(1, stats.Fetched)
}

func (s *ImportTestSuite) TestImportPlaylist_SourceErrorDiscardsTally() {
	first := &domain.PlaylistPage{
		Items:         []domain.PlaylistItem{videoItem("vid1", "First")},
		NextPageToken: "tok-2",
	}
	inserted := &domain.Video{ID: 1, Title: "First", URL: watchURL("vid1")}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(first, nil)
	s.videos.EXPECT().Insert(gomock.Any(), "First", watchURL("vid1"), "").Return(inserted, true, nil)
	s.publisher.EXPECT().Publish(gomock.Any(), inserted).Return(nil)

	srcErr := &domain.SourceUnavailableError{Status: 503, Body: "upstream down"}
	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "tok-2").Return(nil, srcErr)

	stats, err := s.service.ImportPlaylistByID(context.Background(), "PL42")

	s.Error(err)
	s.Nil(stats)

	var unavailable *domain.SourceUnavailableError
	s.ErrorAs(err, &unavailable)
	s.Equal(503, unavailable.Status)
}

func (s *ImportTestSuite) TestImportPlaylist_StoreErrorFailsRun() {
	page := &domain.PlaylistPage{
		Items: []domain.PlaylistItem{videoItem("vid1", "First")},
	}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(page, nil)
	s.videos.EXPECT().Insert(gomock.Any(), "First", watchURL("vid1"), "").
		Return(nil, false, &domain.StorageError{Op: "insert video", Err: errors.New("connection reset")})

	stats, err := s.service.ImportPlaylistByID(context.Background(), "PL42")

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "reconcile page")
}

func (s *ImportTestSuite) TestImportPlaylist_PublishFailureIsNotFatal() {
	page := &domain.PlaylistPage{
		Items: []domain.PlaylistItem{videoItem("vid1", "First")},
	}
	inserted := &domain.Video{ID: 1, Title: "First", URL: watchURL("vid1")}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(page, nil)
	s.videos.EXPECT().Insert(gomock.Any(), "First", watchURL("vid1"), "").Return(inserted, true, nil)
	s.publisher.EXPECT().Publish(gomock.Any(), inserted).Return(errors.New("broker gone"))

	s.expectRecordImport("PL42")

	stats, err := s.service.ImportPlaylistByID(context.Background(), "PL42")

	s.NoError(err)
	s.Equal(1, stats.Inserted)
}

func (s *ImportTestSuite) TestImportPlaylist_PublisherNil() {
	service := NewCatalogService(s.source, s.videos, s.importState, nil, s.logger, s.cfg)

	page := &domain.PlaylistPage{
		Items: []domain.PlaylistItem{videoItem("vid1", "First")},
	}
	inserted := &domain.Video{ID: 1, Title: "First", URL: watchURL("vid1")}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(page, nil)
	s.videos.EXPECT().Insert(gomock.Any(), "First", watchURL("vid1"), "").Return(inserted, true, nil)

	s.expectRecordImport("PL42")

	stats, err := service.ImportPlaylistByID(context.Background(), "PL42")

	s.NoError(err)
	s.Equal(1, stats.Inserted)
}

func (s *ImportTestSuite) TestImportPlaylist_RecordImportFailureIsNotFatal() {
	page := &domain.PlaylistPage{
		Items: []domain.PlaylistItem{videoItem("vid1", "First")},
	}

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL42", "").Return(page, nil)
	s.videos.EXPECT().Insert(gomock.Any(), "First", watchURL("vid1"), "").Return(nil, false, nil)

	s.importState.EXPECT().Get(gomock.Any(), "PL42").
		Return(nil, &domain.StorageError{Op: "get import state", Err: errors.New("down")})

	stats, err := s.service.ImportPlaylistByID(context.Background(), "PL42")

	s.NoError(err)
	s.Equal(1, stats.Fetched)
}

func (s *ImportTestSuite) TestRefreshTracked() {
	states := []domain.ImportState{
		{PlaylistID: "PL1"},
		{PlaylistID: "PL2"},
	}
	s.importState.EXPECT().List(gomock.Any()).Return(states, nil)

	// PL1 imports cleanly, PL2 fails; the refresh still completes.
	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL1", "").Return(&domain.PlaylistPage{}, nil)
	s.expectRecordImport("PL1")

	s.source.EXPECT().FetchPlaylistPage(gomock.Any(), "PL2", "").
		Return(nil, &domain.SourceUnavailableError{Status: 500, Body: "boom"})

	err := s.service.RefreshTracked(context.Background())
	s.NoError(err)
}
