package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/services"
	"github.com/vocallq/vocallq/internal/utils"
)

type fakeCache struct {
	store map[string][]byte
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	b, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if f.store == nil {
		f.store = map[string][]byte{}
	}
	f.store[key] = b
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestWebinarCreateValidation(t *testing.T) {
	assert := assert.New(t)
	svc := services.NewWebinarService(&fakeWebinarRepo{}, &fakeCache{}, quietLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", services.CreateWebinarInput{Title: "Launch", StartTime: time.Now()})
	assert.True(utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.Create(ctx, testUserID, services.CreateWebinarInput{Title: "  ", StartTime: time.Now()})
	assert.True(utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Create(ctx, testUserID, services.CreateWebinarInput{Title: "Launch"})
	assert.True(utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestWebinarCreateDefaultsLanguage(t *testing.T) {
	assert := assert.New(t)
	repo := &fakeWebinarRepo{}
	svc := services.NewWebinarService(repo, &fakeCache{}, quietLogger())

	webinar, err := svc.Create(context.Background(), testUserID, services.CreateWebinarInput{
		Title:     "Launch",
		StartTime: time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal("en", webinar.TranscriptLanguage)
	assert.Equal(testUserID, webinar.PresenterID)
	assert.NotEmpty(webinar.ID)
}

func TestWebinarListCaches(t *testing.T) {
	assert := assert.New(t)
	repo := &fakeWebinarRepo{webinars: map[string]*models.Webinar{
		testWebinarID: {ID: testWebinarID, Title: "Launch", PresenterID: testUserID},
	}}
	c := &fakeCache{}
	svc := services.NewWebinarService(repo, c, quietLogger())
	ctx := context.Background()

	first, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(first, 1)

	// second read must come from the cache even after the row disappears
	delete(repo.webinars, testWebinarID)
	second, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(second, 1)
}

func TestWebinarCreateInvalidatesListCache(t *testing.T) {
	assert := assert.New(t)
	repo := &fakeWebinarRepo{}
	c := &fakeCache{}
	svc := services.NewWebinarService(repo, c, quietLogger())
	ctx := context.Background()

	empty, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(empty, 0)

	_, err = svc.Create(ctx, testUserID, services.CreateWebinarInput{
		Title:     "Launch",
		StartTime: time.Now(),
	})
	require.NoError(t, err)

	refreshed, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(refreshed, 1)
}

func TestWebinarGetMergesNotFound(t *testing.T) {
	assert := assert.New(t)
	repo := &fakeWebinarRepo{webinars: map[string]*models.Webinar{
		testWebinarID: {ID: testWebinarID, PresenterID: testUserID},
	}}
	svc := services.NewWebinarService(repo, &fakeCache{}, quietLogger())

	_, err := svc.Get(context.Background(), testWebinarID, otherUserID)
	assert.True(utils.IsCode(err, utils.CodeNotFound))
}
