package impl

import (
	"context"
	"testing"

	"baito/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetCompany_CachesRepeatReads(t *testing.T) {
	profileAPI := &fakeProfileAPI{
		companies: map[int64]*entity.CompanyProfile{
			8: {ID: 8, UserID: 80, Name: "Sakura Events", Industry: "events"},
		},
	}
	svc := NewProfileService(profileAPI, newFakeEntityCache(), testLogger())

	first, err := svc.GetCompany(context.Background(), 8)
	require.NoError(t, err)

	second, err := svc.GetCompany(context.Background(), 8)
	require.NoError(t, err)

	assert.Equal(t, "Sakura Events", first.Name)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, profileAPI.companyCalls, "the second read must come from the cache")
}

func TestProfileService_GetWorker_CachesRepeatReads(t *testing.T) {
	profileAPI := &fakeProfileAPI{
		workers: map[int64]*entity.WorkerProfile{
			42: {ID: 42, UserID: 420, FirstName: "Yuki", LastName: "Tanaka", Experience: entity.ExperienceIntermediate},
		},
	}
	svc := NewProfileService(profileAPI, newFakeEntityCache(), testLogger())

	first, err := svc.GetWorker(context.Background(), 42)
	require.NoError(t, err)

	second, err := svc.GetWorker(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "Yuki", first.FirstName)
	assert.Equal(t, entity.ExperienceIntermediate, second.Experience)
	assert.Equal(t, 1, profileAPI.workerCalls)
}

func TestProfileService_GetWorker_NotFound(t *testing.T) {
	svc := NewProfileService(&fakeProfileAPI{}, newFakeEntityCache(), testLogger())

	_, err := svc.GetWorker(context.Background(), 404)

	require.Error(t, err)
}

func TestProfileService_DistinctIDsAreDistinctEntries(t *testing.T) {
	profileAPI := &fakeProfileAPI{
		companies: map[int64]*entity.CompanyProfile{
			8: {ID: 8, Name: "Sakura Events"},
			9: {ID: 9, Name: "Harbor Catering"},
		},
	}
	svc := NewProfileService(profileAPI, newFakeEntityCache(), testLogger())

	a, err := svc.GetCompany(context.Background(), 8)
	require.NoError(t, err)
	b, err := svc.GetCompany(context.Background(), 9)
	require.NoError(t, err)

	assert.NotEqual(t, a.Name, b.Name)
	assert.Equal(t, 2, profileAPI.companyCalls)
}
