package impl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"baito/internal/domain/entity"
	domainerrors "baito/internal/domain/errors"
	"baito/internal/domain/repository"
	"baito/internal/domain/service"
	"baito/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func domainErrNotFound() error {
	return domainerrors.ErrNotFound
}

// fakeDeviceStore is an in-memory DeviceStore that counts calls.
type fakeDeviceStore struct {
	values     map[string]string
	getErr     error
	setErr     error
	clearCalls int
}

func newFakeDeviceStore(values map[string]string) *fakeDeviceStore {
	if values == nil {
		values = make(map[string]string)
	}

	return &fakeDeviceStore{values: values}
}

func (f *fakeDeviceStore) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}

	return value, nil
}

func (f *fakeDeviceStore) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value

	return nil
}

func (f *fakeDeviceStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}

	return nil
}

func (f *fakeDeviceStore) ClearAuth(ctx context.Context) error {
	f.clearCalls++

	return f.Delete(ctx, repository.AuthKeys...)
}

// fakeAuthAPI stubs the auth endpoints with per-call functions and counters.
type fakeAuthAPI struct {
	loginFn   func(email, password string) (*service.TokenPair, error)
	refreshFn func(refreshToken string) (*service.TokenPair, error)
	meFn      func(accessToken string) (*entity.Identity, error)

	logoutErr error

	loginCalls   int
	refreshCalls int
	meCalls      int
	logoutCalls  int
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (*service.TokenPair, error) {
	f.loginCalls++

	return f.loginFn(email, password)
}

func (f *fakeAuthAPI) Register(_ context.Context, _ *service.RegisterInput) (*service.TokenPair, error) {
	return &service.TokenPair{AccessToken: "access-new", RefreshToken: "refresh-new"}, nil
}

func (f *fakeAuthAPI) Refresh(_ context.Context, refreshToken string) (*service.TokenPair, error) {
	f.refreshCalls++

	return f.refreshFn(refreshToken)
}

func (f *fakeAuthAPI) Me(_ context.Context, accessToken string) (*entity.Identity, error) {
	f.meCalls++

	return f.meFn(accessToken)
}

func (f *fakeAuthAPI) Logout(_ context.Context, _ string) error {
	f.logoutCalls++

	return f.logoutErr
}

// fakeSession serves a fixed identity, or ErrSessionInactive when unset.
type fakeSession struct {
	usecase.SessionUsecase

	identity *entity.Identity
}

func (f *fakeSession) CurrentIdentity(_ context.Context) (*entity.Identity, error) {
	if f.identity == nil {
		return nil, domainerrors.ErrSessionInactive
	}

	return f.identity, nil
}

// fakeInspector reports a fixed expiry verdict.
type fakeInspector struct {
	expired bool
}

func (f *fakeInspector) Inspect(string) (*service.TokenClaims, error) {
	return &service.TokenClaims{}, nil
}

func (f *fakeInspector) Expired(string, time.Time) bool {
	return f.expired
}

// fakeOfferAPI serves offers from a map.
type fakeOfferAPI struct {
	offers    map[int64]*entity.JobOffer
	listErr   error
	getCalls  int
	createdFn func(offer *entity.JobOffer) (*entity.JobOffer, error)
}

func (f *fakeOfferAPI) ListOffers(_ context.Context) ([]*entity.JobOffer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	offers := make([]*entity.JobOffer, 0, len(f.offers))
	for _, offer := range f.offers {
		offers = append(offers, offer)
	}

	return offers, nil
}

func (f *fakeOfferAPI) GetOffer(_ context.Context, id int64) (*entity.JobOffer, error) {
	f.getCalls++
	offer, ok := f.offers[id]
	if !ok {
		return nil, domainErrNotFound()
	}

	return offer, nil
}

func (f *fakeOfferAPI) ListCompanyOffers(_ context.Context, companyID int64) ([]*entity.JobOffer, error) {
	var offers []*entity.JobOffer
	for _, offer := range f.offers {
		if offer.CompanyID == companyID {
			offers = append(offers, offer)
		}
	}

	return offers, nil
}

func (f *fakeOfferAPI) CreateOffer(_ context.Context, offer *entity.JobOffer) (*entity.JobOffer, error) {
	if f.createdFn != nil {
		return f.createdFn(offer)
	}
	created := *offer
	created.ID = int64(len(f.offers) + 1)
	if f.offers == nil {
		f.offers = make(map[int64]*entity.JobOffer)
	}
	f.offers[created.ID] = &created

	return &created, nil
}

// fakeApplicationAPI stubs the application endpoints.
type fakeApplicationAPI struct {
	createFn func(offerID, workerID int64, message string) (*entity.Application, error)
	updateFn func(id int64, status entity.ApplicationStatus, response string) (*entity.Application, error)
	byWorker map[int64][]*entity.Application
	byOffer  map[int64][]*entity.Application

	updateCalls int
}

func (f *fakeApplicationAPI) CreateApplication(_ context.Context, offerID, workerID int64, message string) (*entity.Application, error) {
	return f.createFn(offerID, workerID, message)
}

func (f *fakeApplicationAPI) ListWorkerApplications(_ context.Context, workerID int64) ([]*entity.Application, error) {
	return f.byWorker[workerID], nil
}

func (f *fakeApplicationAPI) ListOfferApplications(_ context.Context, offerID int64) ([]*entity.Application, error) {
	return f.byOffer[offerID], nil
}

func (f *fakeApplicationAPI) UpdateApplication(_ context.Context, id int64, status entity.ApplicationStatus, response string) (*entity.Application, error) {
	f.updateCalls++

	return f.updateFn(id, status, response)
}

// fakeJobAPI stubs the job endpoints.
type fakeJobAPI struct {
	createFn func(job *entity.Job) (*entity.Job, error)
	updateFn func(id int64, status entity.JobStatus) (*entity.Job, error)
	jobs     map[int64]*entity.Job
	byWorker map[int64][]*entity.Job

	createCalls int
	updateCalls int
}

func (f *fakeJobAPI) CreateJob(_ context.Context, job *entity.Job) (*entity.Job, error) {
	f.createCalls++

	return f.createFn(job)
}

func (f *fakeJobAPI) GetJob(_ context.Context, id int64) (*entity.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, domainErrNotFound()
	}

	return job, nil
}

func (f *fakeJobAPI) ListWorkerJobs(_ context.Context, workerID int64) ([]*entity.Job, error) {
	return f.byWorker[workerID], nil
}

func (f *fakeJobAPI) UpdateJobStatus(_ context.Context, id int64, status entity.JobStatus) (*entity.Job, error) {
	f.updateCalls++

	return f.updateFn(id, status)
}

// fakeProfileAPI counts lookups so caching can be asserted.
type fakeProfileAPI struct {
	companies map[int64]*entity.CompanyProfile
	workers   map[int64]*entity.WorkerProfile

	companyCalls int
	workerCalls  int
}

func (f *fakeProfileAPI) GetCompany(_ context.Context, id int64) (*entity.CompanyProfile, error) {
	f.companyCalls++
	profile, ok := f.companies[id]
	if !ok {
		return nil, domainErrNotFound()
	}

	return profile, nil
}

func (f *fakeProfileAPI) GetWorker(_ context.Context, id int64) (*entity.WorkerProfile, error) {
	f.workerCalls++
	profile, ok := f.workers[id]
	if !ok {
		return nil, domainErrNotFound()
	}

	return profile, nil
}

// fakeEntityCache is an in-memory EntityCache. Entries never age out.
type fakeEntityCache struct {
	entries map[string][]byte
}

func newFakeEntityCache() *fakeEntityCache {
	return &fakeEntityCache{entries: make(map[string][]byte)}
}

func cacheKey(kind string, id int64) string {
	return kind + "/" + strconv.FormatInt(id, 10)
}

func (f *fakeEntityCache) GetEntity(_ context.Context, kind string, id int64, _ time.Duration) ([]byte, error) {
	payload, ok := f.entries[cacheKey(kind, id)]
	if !ok {
		return nil, repository.ErrCacheMiss
	}

	return payload, nil
}

func (f *fakeEntityCache) PutEntity(_ context.Context, kind string, id int64, payload []byte) error {
	f.entries[cacheKey(kind, id)] = payload

	return nil
}

func (f *fakeEntityCache) InvalidateEntity(_ context.Context, kind string, id int64) error {
	delete(f.entries, cacheKey(kind, id))

	return nil
}

func (f *fakeEntityCache) PurgeOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// fakeConfirmer answers every prompt the same way and records the prompts.
type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (f *fakeConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)

	return f.answer, nil
}

// fakeQRCode returns a fixed payload.
type fakeQRCode struct {
	generated int
}

func (f *fakeQRCode) GenerateOfferQR(int64) ([]byte, error) {
	f.generated++

	return []byte("png"), nil
}

func (f *fakeQRCode) ParseOfferQR(string) (int64, error) {
	return 0, nil
}
