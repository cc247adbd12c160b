package upload

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lzuhelper/joyrun/internal/gateway"
	"github.com/lzuhelper/joyrun/internal/logger"
	"github.com/lzuhelper/joyrun/internal/mock"
	"github.com/lzuhelper/joyrun/internal/session"
	"github.com/lzuhelper/joyrun/internal/validators"
	"github.com/lzuhelper/joyrun/models"
)

func newTestPipeline(
	t *testing.T,
	ctrl *gomock.Controller,
	observer Observer,
) (*Pipeline, *mock.MockDoer, *mock.MockSessionStore) {
	t.Helper()

	mockGw := mock.NewMockDoer(ctrl)
	mockStore := mock.NewMockSessionStore(ctrl)
	mockGw.EXPECT().SetIdentity(gomock.Any()).AnyTimes()

	creds := models.Credentials{UserName: "u@lzu.edu.cn", Password: "pw"}
	manager := session.NewManager(creds, mockGw, mockStore, nil, nil, logger.Nop())

	return NewPipeline(mockGw, manager, observer, 1, logger.Nop()), mockGw, mockStore
}

func okEnvelope() *models.Envelope {
	return &models.Envelope{Ret: models.RetOK}
}

func loginEnvelope() *models.Envelope {
	return &models.Envelope{
		Ret:  models.RetOK,
		Data: []byte(`{"sid":"fresh-sid","user":{"uid":4201}}`),
	}
}

func TestPipeline_Upload_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var stages []string
	observer := ObserverFunc(func(stage string, percent int) {
		stages = append(stages, stage)
	})

	p, mockGw, _ := newTestPipeline(t, ctrl, observer)
	rec, venue := testRecord(t)

	mockGw.EXPECT().
		Execute(gomock.Any(), "POST", "/po.aspx", gomock.Any()).
		Return(okEnvelope(), nil)

	require.NoError(t, p.Upload(context.Background(), rec, venue))
	assert.Equal(t, []string{"building payload", "uploading", "done"}, stages)
}

func TestPipeline_Upload_ReloginOn401(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, mockGw, mockStore := newTestPipeline(t, ctrl, nil)
	rec, venue := testRecord(t)

	// First submission hits an expired session, the pipeline re-logs in
	// exactly once and the second submission succeeds.
	expired := fmt.Errorf("POST /po.aspx: %w", gateway.ErrSessionExpired)
	first := mockGw.EXPECT().
		Execute(gomock.Any(), "POST", "/po.aspx", gomock.Any()).
		Return(nil, expired)
	mockGw.EXPECT().
		Probe(gomock.Any(), "GET", "//user/login/normal", gomock.Any()).
		Return(loginEnvelope(), nil)
	mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	mockGw.EXPECT().
		Execute(gomock.Any(), "POST", "/po.aspx", gomock.Any()).
		Return(okEnvelope(), nil).
		After(first)

	require.NoError(t, p.Upload(context.Background(), rec, venue))
}

func TestPipeline_Upload_RetryLimitExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, mockGw, mockStore := newTestPipeline(t, ctrl, nil)
	rec, venue := testRecord(t)

	expired := fmt.Errorf("POST /po.aspx: %w", gateway.ErrSessionExpired)
	mockGw.EXPECT().
		Execute(gomock.Any(), "POST", "/po.aspx", gomock.Any()).
		Return(nil, expired).
		Times(2)
	mockGw.EXPECT().
		Probe(gomock.Any(), "GET", "//user/login/normal", gomock.Any()).
		Return(loginEnvelope(), nil)
	mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	err := p.Upload(context.Background(), rec, venue)
	assert.ErrorIs(t, err, gateway.ErrSessionExpired)
}

func TestPipeline_Upload_OtherErrorsDoNotTriggerRelogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, mockGw, _ := newTestPipeline(t, ctrl, nil)
	rec, venue := testRecord(t)

	retErr := &gateway.RetStateError{Ret: "50001", Msg: "duplicate record"}
	mockGw.EXPECT().
		Execute(gomock.Any(), "POST", "/po.aspx", gomock.Any()).
		Return(nil, retErr)

	err := p.Upload(context.Background(), rec, venue)

	var got *gateway.RetStateError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "50001", got.Ret)
}

func TestPipeline_Upload_RejectsInvalidRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, _, _ := newTestPipeline(t, ctrl, nil)
	_, venue := testRecord(t)

	// No gateway expectations: a broken record never reaches the wire.
	err := p.Upload(context.Background(), &models.RunRecord{}, venue)
	assert.ErrorIs(t, err, validators.ErrInvalidRunID)
}
