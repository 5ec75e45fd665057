package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-dashboard/backend"
	"crypto-dashboard/backend/backendtest"
	"crypto-dashboard/layout"
	"crypto-dashboard/middleware"
	"crypto-dashboard/models"
	"crypto-dashboard/portfolio"
	"crypto-dashboard/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeSnapshots struct {
	mu       sync.Mutex
	recorded []models.PortfolioSnapshot
	err      error
}

func (f *fakeSnapshots) Record(_ context.Context, userID string, ps []portfolio.Portfolio, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, p := range ps {
		f.recorded = append(f.recorded, models.PortfolioSnapshot{UserID: userID, PortfolioID: p.ID, TotalValue: p.TotalValue, Timestamp: at})
	}
	return nil
}

func (f *fakeSnapshots) History(_ context.Context, userID, portfolioID string, limit int) ([]models.PortfolioSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.PortfolioSnapshot
	for _, s := range f.recorded {
		if s.UserID == userID && (portfolioID == "" || s.PortfolioID == portfolioID) {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fixture struct {
	router    *gin.Engine
	layouts   *storage.MemoryKV
	backend   *backendtest.Server
	snapshots *fakeSnapshots
}

func samplePortfolios() []portfolio.Portfolio {
	realized := 50.0
	basis := 1500.0
	return []portfolio.Portfolio{{
		ID:                        "p1",
		Name:                      "Main",
		TotalValue:                2000,
		TotalProfitLoss:           500,
		TotalProfitLossPercentage: 33.33,
		TotalRealizedProfitLoss:   &realized,
		TotalCostBasis:            &basis,
		Assets: []portfolio.Asset{{
			ID:                   "a1",
			Symbol:               "eth",
			Amount:               1.5,
			AverageBuyPrice:      1000,
			CurrentPrice:         1333.33,
			ProfitLossPercentage: 33.33,
			Transactions: []portfolio.Transaction{
				{ID: "t1", TransactionType: portfolio.Buy, Amount: 2, PricePerUnit: 1000, Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
				{ID: "t2", TransactionType: portfolio.Sell, Amount: 0.5, PricePerUnit: 1100, RealizedProfitLoss: 50, Timestamp: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
			},
		}},
	}}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, samplePortfolios())
}

func newFixtureWith(t *testing.T, ps []portfolio.Portfolio, opts ...backend.Option) *fixture {
	t.Helper()
	srv := backendtest.NewServer(ps)
	t.Cleanup(srv.Close)

	f := &fixture{
		layouts:   storage.NewMemoryKV(),
		backend:   srv,
		snapshots: &fakeSnapshots{},
	}
	h := New(f.layouts, backend.NewClient(srv.URL, opts...), f.snapshots, zerolog.Nop())
	h.now = func() time.Time { return fixedNow }

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "42")
		c.Set(middleware.ContextToken, "tok-42")
		c.Next()
	})
	h.Register(r)
	f.router = r
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type layoutResult struct {
	Layout  layout.Layout `json:"layout"`
	Changed bool          `json:"changed"`
}

func sectionIDs(sections []layout.Section) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

func TestGetLayout_DefaultWhenNothingStored(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/dashboard/layout", "")
	require.Equal(t, http.StatusOK, w.Code)

	l := decode[layout.Layout](t, w)
	assert.Equal(t, []string{"summary-cards", "performance-chart", "portfolio-list", "top-cryptos"}, sectionIDs(l.Sections))
}

func TestReorderSections_Persists(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/dashboard/layout/reorder", `{"activeId":"top-cryptos","overId":"summary-cards"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[layoutResult](t, w)
	assert.True(t, res.Changed)
	assert.Equal(t, fixedNow, res.Layout.LastModified)

	raw, ok, err := f.layouts.Get(context.Background(), layout.KeyFor("42"))
	require.NoError(t, err)
	require.True(t, ok)
	stored, err := layout.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "top-cryptos", stored.Sections[0].ID)

	w = f.do(t, http.MethodGet, "/dashboard/layout", "")
	l := decode[layout.Layout](t, w)
	assert.Equal(t, "top-cryptos", l.Sections[0].ID)
	assert.Equal(t, 0, l.Sections[0].Order)
}

func TestReorderSections_MissingFields(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodPost, "/dashboard/layout/reorder", `{"activeId":"top-cryptos"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleAndEnabledSections(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/dashboard/sections/performance-chart/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[layoutResult](t, w).Changed)

	w = f.do(t, http.MethodGet, "/dashboard/sections", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[struct {
		Sections []layout.Section `json:"sections"`
	}](t, w)
	assert.Equal(t, []string{"summary-cards", "portfolio-list", "top-cryptos"}, sectionIDs(res.Sections))

	w = f.do(t, http.MethodPost, "/dashboard/sections/nope/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[layoutResult](t, w).Changed)
}

func TestResizeSection(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/dashboard/sections/summary-cards/size", `{"size":"half"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[layoutResult](t, w)
	assert.True(t, res.Changed)
	s, ok := res.Layout.Section("summary-cards")
	require.True(t, ok)
	assert.Equal(t, layout.Size("half"), s.Size)

	w = f.do(t, http.MethodPut, "/dashboard/sections/summary-cards/size", `{"size":"huge"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyPresetAndReset(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/dashboard/layout/presets/minimal", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[layoutResult](t, w)
	assert.True(t, res.Changed)

	w = f.do(t, http.MethodPost, "/dashboard/layout/presets/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/dashboard/layout/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[layoutResult](t, w)
	assert.Equal(t, []string{"summary-cards", "performance-chart", "portfolio-list", "top-cryptos"}, sectionIDs(res.Layout.Sections))
	for _, s := range res.Layout.Sections {
		assert.True(t, s.Enabled, s.ID)
	}
}

func TestListPresets(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/dashboard/presets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, layout.PresetNames(), decode[map[string][]string](t, w)["presets"])
}

func TestCorruptedLayoutFallsBackToDefault(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.layouts.Set(context.Background(), layout.KeyFor("42"), "{not json", 0))

	w := f.do(t, http.MethodGet, "/dashboard/layout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[layout.Layout](t, w).Sections, 4)
}

func TestGetSummary(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/portfolios/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	s := decode[portfolio.Summary](t, w)
	assert.Equal(t, 1, s.PortfolioCount)
	assert.Equal(t, 1, s.AssetCount)
	assert.Equal(t, 2000.0, s.TotalValue)
	assert.Equal(t, 33.33, s.CombinedProfitLossPercentage)

	require.Len(t, f.snapshots.recorded, 1)
	assert.Equal(t, "42", f.snapshots.recorded[0].UserID)
	assert.Equal(t, fixedNow, f.snapshots.recorded[0].Timestamp)
}

func TestGetSummary_RecordsOnlyFreshFigures(t *testing.T) {
	f := newFixtureWith(t, samplePortfolios(), backend.WithCache(storage.NewMemoryKV(), time.Minute))

	for range 3 {
		w := f.do(t, http.MethodGet, "/portfolios/summary", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 1, f.backend.Count("portfolios"))
	assert.Len(t, f.snapshots.recorded, 1, "cached reads must not add snapshots")
}

func TestGetSummary_SnapshotFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.snapshots.err = errors.New("db down")

	w := f.do(t, http.MethodGet, "/portfolios/summary", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetSummary_BackendErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   int
	}{
		{"unauthorized", http.StatusUnauthorized, http.StatusUnauthorized},
		{"unavailable", http.StatusBadGateway, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.backend.Fail(tc.status)
			w := f.do(t, http.MethodGet, "/portfolios/summary", "")
			assert.Equal(t, tc.want, w.Code)
		})
	}

	t.Run("graphql errors", func(t *testing.T) {
		f := newFixture(t)
		f.backend.FailGraphQL("boom")
		w := f.do(t, http.MethodGet, "/portfolios/summary", "")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestGetHistory(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/portfolios/summary", "")

	w := f.do(t, http.MethodGet, "/portfolios/history?portfolioId=p1&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[map[string][]models.PortfolioSnapshot](t, w)
	require.Len(t, res["snapshots"], 1)
	assert.Equal(t, 2000.0, res["snapshots"][0].TotalValue)

	w = f.do(t, http.MethodGet, "/portfolios/history?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPortfolioTransactions(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/portfolios/p1/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[struct {
		Transactions []portfolio.Transaction `json:"transactions"`
		Totals       portfolio.Totals        `json:"totals"`
	}](t, w)
	require.Len(t, res.Transactions, 2)
	assert.Equal(t, "t2", res.Transactions[0].ID, "newest first")
	assert.Equal(t, 2, res.Totals.Count)

	w = f.do(t, http.MethodGet, "/portfolios/p1/transactions?type=buy", "")
	require.Equal(t, http.StatusOK, w.Code)
	res.Transactions = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "t1", res.Transactions[0].ID)

	w = f.do(t, http.MethodGet, "/portfolios/p1/transactions?type=swap", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/portfolios/missing/transactions", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAssetTransactions(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/portfolios/p1/assets/a1/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[map[string]any](t, w)
	assert.Equal(t, "eth", res["symbol"])
	assert.Equal(t, 33.33, res["profitLossPercentage"])

	w = f.do(t, http.MethodGet, "/portfolios/p1/assets/zz/transactions", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func lastAddVars(t *testing.T, srv *backendtest.Server) map[string]any {
	t.Helper()
	reqs := srv.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if strings.Contains(reqs[i].Query, "addTransaction(") {
			return reqs[i].Variables
		}
	}
	t.Fatal("no addTransaction request")
	return nil
}

func TestAddAssetTransaction_Buy(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/portfolios/p1/assets/a1/transactions",
		`{"transactionType":"buy","amount":0.25,"pricePerUnit":1400}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	res := decode[map[string]any](t, w)
	assert.Equal(t, false, res["adjusted"])
	assert.Equal(t, false, res["fullSellout"])
	vars := lastAddVars(t, f.backend)
	assert.Equal(t, 0.25, vars["amount"])
	assert.NotContains(t, vars, "notes")
}

func TestAddAssetTransaction_OversizedSellNeedsConfirmation(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/portfolios/p1/assets/a1/transactions",
		`{"transactionType":"sell","amount":5,"pricePerUnit":1400}`)
	require.Equal(t, http.StatusConflict, w.Code)
	res := decode[map[string]any](t, w)
	assert.Equal(t, true, res["requiresConfirmation"])
	assert.Equal(t, 1.5, res["amount"])
	assert.Zero(t, f.backend.Count("addTransaction"))

	w = f.do(t, http.MethodPost, "/portfolios/p1/assets/a1/transactions",
		`{"transactionType":"sell","amount":5,"pricePerUnit":1400,"confirm":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res = decode[map[string]any](t, w)
	assert.Equal(t, true, res["adjusted"])
	assert.Equal(t, true, res["fullSellout"])
	assert.Equal(t, 1.5, res["amount"])

	vars := lastAddVars(t, f.backend)
	assert.Equal(t, 1.5, vars["amount"])
	assert.Equal(t, "Full sellout of 1.5 ETH", vars["notes"])
}

func TestAddAssetTransaction_ExactSellKeepsUserNotes(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/portfolios/p1/assets/a1/transactions",
		`{"transactionType":"sell","amount":1.5,"pricePerUnit":1400,"notes":"taking profit"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[map[string]any](t, w)
	assert.Equal(t, false, res["adjusted"])
	assert.Equal(t, true, res["fullSellout"])
	assert.Equal(t, "taking profit", lastAddVars(t, f.backend)["notes"])
}

func TestAddAssetTransaction_Rejects(t *testing.T) {
	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{"zero amount", "/portfolios/p1/assets/a1/transactions", `{"transactionType":"sell","amount":0,"pricePerUnit":10}`, http.StatusBadRequest},
		{"negative amount", "/portfolios/p1/assets/a1/transactions", `{"transactionType":"buy","amount":-1,"pricePerUnit":10}`, http.StatusBadRequest},
		{"bad type", "/portfolios/p1/assets/a1/transactions", `{"transactionType":"swap","amount":1,"pricePerUnit":10}`, http.StatusBadRequest},
		{"unknown asset", "/portfolios/p1/assets/zz/transactions", `{"transactionType":"buy","amount":1,"pricePerUnit":10}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			w := f.do(t, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.Zero(t, f.backend.Count("addTransaction"))
		})
	}
}

func TestAddAssetTransaction_SellWithNothingHeld(t *testing.T) {
	ps := samplePortfolios()
	ps[0].Assets = append(ps[0].Assets, portfolio.Asset{ID: "a2", Symbol: "btc", Amount: 0})
	f := newFixtureWith(t, ps)

	for _, body := range []string{
		`{"transactionType":"sell","amount":1,"pricePerUnit":60000}`,
		`{"transactionType":"sell","amount":1,"pricePerUnit":60000,"confirm":true}`,
	} {
		w := f.do(t, http.MethodPost, "/portfolios/p1/assets/a2/transactions", body)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		assert.NotContains(t, decode[map[string]any](t, w), "requiresConfirmation")
	}
	assert.Zero(t, f.backend.Count("addTransaction"))

	w := f.do(t, http.MethodPost, "/portfolios/p1/assets/a2/transactions",
		`{"transactionType":"buy","amount":1,"pricePerUnit":60000}`)
	assert.Equal(t, http.StatusCreated, w.Code, "buys are still allowed")
}

func TestCreatePortfolio(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/portfolios", `{"name":"Degen","description":"weekend trades"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[portfolio.Portfolio](t, w)
	assert.Equal(t, "Degen", p.Name)
	assert.NotEmpty(t, p.ID)
	assert.Len(t, f.backend.Portfolios(), 2)

	w = f.do(t, http.MethodPost, "/portfolios", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = f.do(t, http.MethodPost, "/portfolios", `{"name":"`+strings.Repeat("x", 101)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, f.backend.Count("createPortfolio"))
}

func TestUpdatePortfolio(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/portfolios/p1", `{"name":"Core"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Core", decode[portfolio.Portfolio](t, w).Name)
	assert.Equal(t, "Core", f.backend.Portfolios()[0].Name)

	w = f.do(t, http.MethodPut, "/portfolios/p1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/portfolios/missing", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePortfolio(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodDelete, "/portfolios/p1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.backend.Portfolios())

	w = f.do(t, http.MethodDelete, "/portfolios/p1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddAndRemoveAsset(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/portfolios/p1/assets", `{"cryptoId":"bitcoin","amount":0.1,"purchasePrice":60000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := decode[portfolio.Asset](t, w)
	assert.Equal(t, 0.1, a.Amount)
	require.Len(t, f.backend.Portfolios()[0].Assets, 2)

	w = f.do(t, http.MethodPost, "/portfolios/p1/assets", `{"cryptoId":"bitcoin","amount":0,"purchasePrice":60000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = f.do(t, http.MethodPost, "/portfolios/missing/assets", `{"cryptoId":"bitcoin","amount":1,"purchasePrice":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/portfolios/p1/assets/"+a.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, f.backend.Portfolios()[0].Assets, 1)

	w = f.do(t, http.MethodDelete, "/portfolios/p1/assets/"+a.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func withMarket(f *fixture) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	f.backend.SetMarket([]portfolio.Cryptocurrency{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 60000, MarketCapRank: 1},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3000, MarketCapRank: 2},
	}, map[string][]portfolio.PricePoint{
		"bitcoin": {{Timestamp: day, Price: 58000}, {Timestamp: day.AddDate(0, 0, 1), Price: 60000}},
	})
}

func TestListCryptocurrencies(t *testing.T) {
	f := newFixture(t)
	withMarket(f)

	w := f.do(t, http.MethodGet, "/market/cryptocurrencies?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[map[string][]portfolio.Cryptocurrency](t, w)
	require.Len(t, res["cryptocurrencies"], 1)
	assert.Equal(t, "bitcoin", res["cryptocurrencies"][0].ID)

	w = f.do(t, http.MethodGet, "/market/cryptocurrencies?limit=1000", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, maxListingLimit, f.backend.Requests()[1].Variables["limit"])

	for _, q := range []string{"limit=0", "limit=abc"} {
		w = f.do(t, http.MethodGet, "/market/cryptocurrencies?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestGetCryptocurrency(t *testing.T) {
	f := newFixture(t)
	withMarket(f)

	w := f.do(t, http.MethodGet, "/market/cryptocurrencies/ethereum", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ethereum", decode[portfolio.Cryptocurrency](t, w).Name)

	w = f.do(t, http.MethodGet, "/market/cryptocurrencies/dogecoin", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPriceHistory(t *testing.T) {
	f := newFixture(t)
	withMarket(f)

	w := f.do(t, http.MethodGet, "/market/cryptocurrencies/bitcoin/history?days=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[struct {
		CryptoID string                 `json:"cryptoId"`
		Days     int                    `json:"days"`
		Prices   []portfolio.PricePoint `json:"prices"`
	}](t, w)
	assert.Equal(t, "bitcoin", res.CryptoID)
	assert.Equal(t, 1, res.Days)
	require.Len(t, res.Prices, 1)
	assert.Equal(t, 60000.0, res.Prices[0].Price)

	w = f.do(t, http.MethodGet, "/market/cryptocurrencies/bitcoin/history?days=-3", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/market/cryptocurrencies/dogecoin/history", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
