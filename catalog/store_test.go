package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/domain"
)

// stubGateway scripts gateway responses per call.
type stubGateway struct {
	mu         sync.Mutex
	listFn     func(call int) ([]domain.Product, error)
	listCalls  int
	getFn      func(id string) (domain.Product, error)
	createErr  error
	updateErr  error
	deleteErr  error
	categories []domain.Category
}

func (s *stubGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	s.listCalls++
	call := s.listCalls
	fn := s.listFn
	s.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(call)
}

func (s *stubGateway) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if s.getFn == nil {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return s.getFn(id)
}

func (s *stubGateway) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if s.createErr != nil {
		return domain.Product{}, s.createErr
	}
	p.ID = "created"
	return p, nil
}

func (s *stubGateway) UpdateProduct(ctx context.Context, id string, p domain.Product) (domain.Product, error) {
	if s.updateErr != nil {
		return domain.Product{}, s.updateErr
	}
	p.ID = id
	return p, nil
}

func (s *stubGateway) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteErr
}

func (s *stubGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if s.categories == nil {
		return nil, domain.NewGatewayError("list categories", 0)
	}
	return s.categories, nil
}

func namedProducts(names ...string) []domain.Product {
	out := make([]domain.Product, len(names))
	for i, n := range names {
		out[i] = domain.Product{ID: n, Name: n, Price: decimal.NewFromInt(1), Status: domain.StatusInStock}
	}
	return out
}

func TestLoadReplacesCollection(t *testing.T) {
	gw := &stubGateway{listFn: func(int) ([]domain.Product, error) {
		return namedProducts("a", "b"), nil
	}}
	s := NewStore(gw)

	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Products(), 2)
	assert.False(t, s.Loading())
	assert.NoError(t, s.Err())
}

func TestLoadFailureKeepsPreviousCollection(t *testing.T) {
	boom := errors.New("backend down")
	gw := &stubGateway{listFn: func(call int) ([]domain.Product, error) {
		if call == 1 {
			return namedProducts("a", "b"), nil
		}
		return nil, boom
	}}
	s := NewStore(gw)

	require.NoError(t, s.Load(context.Background()))
	err := s.Load(context.Background())
	require.Error(t, err)

	assert.Len(t, s.Products(), 2, "failed load must not touch the previous collection")
	assert.False(t, s.Loading(), "loading flag cleared on failure")
	assert.ErrorIs(t, s.Err(), boom)

	// a later successful load clears the recorded error
	gw.mu.Lock()
	gw.listFn = func(int) ([]domain.Product, error) { return namedProducts("c"), nil }
	gw.mu.Unlock()
	require.NoError(t, s.Load(context.Background()))
	assert.NoError(t, s.Err())
	assert.Len(t, s.Products(), 1)
}

func TestStaleLoadResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	gw := &stubGateway{}
	gw.listFn = func(call int) ([]domain.Product, error) {
		if call == 1 {
			close(firstStarted)
			<-releaseFirst
			return namedProducts("stale"), nil
		}
		return namedProducts("fresh-1", "fresh-2"), nil
	}
	s := NewStore(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Load(context.Background())
	}()

	<-firstStarted
	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.Products(), 2)

	close(releaseFirst)
	wg.Wait()

	got := s.Products()
	require.Len(t, got, 2, "late stale response must not overwrite the newer collection")
	assert.Equal(t, "fresh-1", got[0].ID)
}

func TestMutationsTriggerReload(t *testing.T) {
	var listed []domain.Product
	gw := &stubGateway{listFn: func(int) ([]domain.Product, error) {
		return listed, nil
	}}
	s := NewStore(gw)

	listed = namedProducts("a", "new")
	created, err := s.Create(context.Background(), domain.Product{Name: "new", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, "created", created.ID)
	assert.Len(t, s.Products(), 2, "collection reflects server state after create")

	listed = namedProducts("a")
	require.NoError(t, s.Delete(context.Background(), "new"))
	assert.Len(t, s.Products(), 1, "collection reflects server state after delete")

	listed = namedProducts("a2")
	_, err = s.Update(context.Background(), "a", domain.Product{Name: "a2", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, "a2", s.Products()[0].ID)
}

func TestMutationFailureLeavesCollectionAlone(t *testing.T) {
	gw := &stubGateway{listFn: func(int) ([]domain.Product, error) {
		return namedProducts("a"), nil
	}}
	s := NewStore(gw)
	require.NoError(t, s.Load(context.Background()))
	before := gw.listCalls

	gw.createErr = errors.New("rejected")
	_, err := s.Create(context.Background(), domain.Product{Name: "x"})
	require.Error(t, err)

	gw.deleteErr = errors.New("rejected")
	require.Error(t, s.Delete(context.Background(), "a"))

	assert.Equal(t, before, gw.listCalls, "no reload is attempted after a failed mutation")
	assert.Len(t, s.Products(), 1)
}

func TestGetByIDDoesNotTouchCollection(t *testing.T) {
	gw := &stubGateway{
		listFn: func(int) ([]domain.Product, error) { return namedProducts("a"), nil },
		getFn: func(id string) (domain.Product, error) {
			return domain.Product{}, domain.NewProductNotFoundError(id)
		},
	}
	s := NewStore(gw)
	require.NoError(t, s.Load(context.Background()))

	_, err := s.GetByID(context.Background(), "nope")
	assert.True(t, domain.IsProductNotFoundError(err))
	assert.Len(t, s.Products(), 1)
	assert.NoError(t, s.Err(), "a single-fetch failure is not a load failure")
}

func TestLoadingFlagDuringFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &stubGateway{listFn: func(int) ([]domain.Product, error) {
		close(started)
		<-release
		return nil, nil
	}}
	s := NewStore(gw)

	done := make(chan struct{})
	go func() {
		_ = s.Load(context.Background())
		close(done)
	}()

	<-started
	assert.True(t, s.Loading())
	close(release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("load did not finish")
	}
	assert.False(t, s.Loading())
}
