package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lzuhelper/joyrun/internal/logger"
	"github.com/lzuhelper/joyrun/internal/mock"
	"github.com/lzuhelper/joyrun/internal/session"
	"github.com/lzuhelper/joyrun/models"
)

const testUserName = "320180939@lzu.edu.cn"

func newTestService(t *testing.T, ctrl *gomock.Controller) (*Service, *mock.MockDoer, *mock.MockSessionStore, *session.Manager) {
	t.Helper()

	mockGw := mock.NewMockDoer(ctrl)
	mockStore := mock.NewMockSessionStore(ctrl)
	mockGw.EXPECT().SetIdentity(gomock.Any()).AnyTimes()

	creds := models.Credentials{UserName: testUserName, Password: "pw"}
	manager := session.NewManager(creds, mockGw, mockStore, nil, nil, logger.Nop())

	return NewService(mockGw, manager, 1, logger.Nop()), mockGw, mockStore, manager
}

func envelopeWithData(t *testing.T, data any) *models.Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &models.Envelope{Ret: models.RetOK, Data: raw}
}

func TestService_GetRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGw, _, _ := newTestService(t, ctrl)

	mockGw.EXPECT().
		Execute(gomock.Any(), "POST", "/userRunList.aspx", map[string]string{"year": "0"}).
		Return(envelopeWithData(t, map[string]any{
			"datas": []map[string]any{
				{"fid": 101, "runid": "run-a", "meter": 4800, "second": 1475},
				{"fid": "102", "runid": "run-b", "meter": "5000", "second": 1500},
			},
		}), nil)

	records, err := svc.GetRecords(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(101), int64(records[0].FID))
	assert.Equal(t, "run-a", records[0].RunID)
	// Quoted numbers decode the same as plain ones.
	assert.Equal(t, int64(102), int64(records[1].FID))
	assert.Equal(t, int64(5000), int64(records[1].Meter))
}

func TestService_GetRecord_DecodesWireFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGw, _, _ := newTestService(t, ctrl)

	stepcontent, err := models.EncodeStepContent([]models.StepBucket{
		{{Steps: 14, Distance: 16.5, Seconds: 5}},
	})
	require.NoError(t, err)

	mockGw.EXPECT().
		Execute(gomock.Any(), "POST", "/Run/GetInfo.aspx", map[string]string{"fid": "101", "wgs": "1"}).
		Return(envelopeWithData(t, map[string]any{
			"runid":       "run-a",
			"meter":       4800,
			"second":      1475,
			"starttime":   1700000000,
			"content":     "[35.943610,104.156730]-[35.943695,104.156801]",
			"altitude":    "[1748.2,1748.9]",
			"heartrate":   "[120,151]",
			"stepcontent": stepcontent,
			"stepremark":  `{"avgfreq":176,"maxfreq":182}`,
		}), nil)

	detail, err := svc.GetRecord(context.Background(), 101)
	require.NoError(t, err)

	assert.Equal(t, "run-a", detail.RunID)
	assert.Equal(t, 4800, detail.Meter)
	assert.Equal(t, int64(1700000000), detail.StartTime)
	require.Len(t, detail.Points, 2)
	assert.Equal(t, []float64{1748.2, 1748.9}, detail.Altitude)
	assert.Equal(t, []int{120, 151}, detail.HeartRate)
	require.Len(t, detail.StepBuckets, 1)
	assert.Equal(t, 14, detail.StepBuckets[0][0].Steps)
	assert.Equal(t, models.StepRemark{AverageFrequency: 176, MaxFrequency: 182}, detail.Remark)
}

func TestService_CallConfirmsRestoredSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGw, mockStore, manager := newTestService(t, ctrl)

	cached := models.Identity{UID: 4201, SID: "cached-sid", UserName: testUserName}
	mockStore.EXPECT().Load(gomock.Any()).Return(cached, nil)
	require.NoError(t, manager.Restore(context.Background()))
	require.Equal(t, session.StateAssumedValid, manager.State())

	mockGw.EXPECT().
		Execute(gomock.Any(), "GET", "//user/getbindings", gomock.Nil()).
		Return(envelopeWithData(t, map[string]any{"bindings": []map[string]any{
			{"type": "wechat", "nick": "runner"},
		}}), nil)

	bindings, err := svc.GetBindings(context.Background())
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, "wechat", bindings[0].Type)

	// The successful authenticated call upgrades the assumed-valid state.
	assert.Equal(t, session.StateLoggedIn, manager.State())
}

func TestService_GetTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGw, _, _ := newTestService(t, ctrl)

	mockGw.EXPECT().
		Execute(gomock.Any(), "GET", "/GetTimestamp.aspx", gomock.Nil()).
		Return(envelopeWithData(t, map[string]any{"timestamp": 1700000123}), nil)

	ts, err := svc.GetTimestamp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1700000123), ts)
}

func TestService_GetMyInfo_UsesSessionUID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGw, mockStore, manager := newTestService(t, ctrl)

	cached := models.Identity{UID: 4201, SID: "cached-sid", UserName: testUserName}
	mockStore.EXPECT().Load(gomock.Any()).Return(cached, nil)
	require.NoError(t, manager.Restore(context.Background()))

	mockGw.EXPECT().
		Execute(gomock.Any(), "POST", "/user.aspx", map[string]string{"touid": "4201", "option": "info"}).
		Return(envelopeWithData(t, map[string]any{"uid": 4201, "nick": "runner", "allmeter": 123400}), nil)

	info, err := svc.GetMyInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "runner", info.Nick)
	assert.Equal(t, int64(123400), int64(info.AllMeter))
}
