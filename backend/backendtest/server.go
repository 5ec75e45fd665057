// Package backendtest provides an in-process fake of the portfolio GraphQL API.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"time"

	"crypto-dashboard/portfolio"
)

type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
	Token     string         `json:"-"`
}

// Server answers the portfolio, asset, transaction and market operations from
// in-memory data.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	portfolios []portfolio.Portfolio
	coins      []portfolio.Cryptocurrency
	history    map[string][]portfolio.PricePoint
	requests   []Request
	status     int
	errors     []string
	nextID     int
}

func NewServer(ps []portfolio.Portfolio) *Server {
	s := &Server{portfolios: ps, history: map[string][]portfolio.PricePoint{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// SetMarket replaces the listings and per-coin price history.
func (s *Server) SetMarket(coins []portfolio.Cryptocurrency, history map[string][]portfolio.PricePoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coins = coins
	s.history = history
	if s.history == nil {
		s.history = map[string][]portfolio.PricePoint{}
	}
}

// Portfolios returns a copy of the current portfolio list.
func (s *Server) Portfolios() []portfolio.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.portfolios)
}

// Fail makes every following request answer with the given HTTP status.
func (s *Server) Fail(status int) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// FailGraphQL makes every following request answer 200 with GraphQL errors.
func (s *Server) FailGraphQL(msgs ...string) {
	s.mu.Lock()
	s.errors = msgs
	s.mu.Unlock()
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many received requests contained the given operation name.
func (s *Server) Count(op string) int {
	n := 0
	for _, r := range s.Requests() {
		if operation(r.Query) == op {
			n++
		}
	}
	return n
}

var operations = []string{
	"addTransaction",
	"portfolioTransactions",
	"createPortfolio",
	"updatePortfolio",
	"deletePortfolio",
	"addAssetToPortfolio",
	"removeAssetFromPortfolio",
	"cryptocurrencies",
	"cryptocurrency",
	"priceHistory",
}

func operation(query string) string {
	for _, op := range operations {
		if strings.Contains(query, op+"(") {
			return op
		}
	}
	if strings.Contains(query, "portfolios {") {
		return "portfolios"
	}
	return ""
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	req.Token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)

	if s.status != 0 {
		w.WriteHeader(s.status)
		return
	}
	if len(s.errors) > 0 {
		errs := make([]map[string]string, len(s.errors))
		for i, e := range s.errors {
			errs[i] = map[string]string{"message": e}
		}
		writeJSON(w, map[string]any{"data": nil, "errors": errs})
		return
	}

	vars := req.Variables
	var result any
	switch op := operation(req.Query); op {
	case "portfolios":
		result = s.portfolios
	case "portfolioTransactions":
		// unknown portfolios answer null, like the real resolver
		if p := s.find(str(vars, "portfolioId")); p != nil {
			txs := allTransactions(*p)
			if txs == nil {
				txs = []portfolio.Transaction{}
			}
			result = txs
		}
	case "addTransaction":
		result = s.addTransaction(vars)
	case "createPortfolio":
		input, _ := vars["input"].(map[string]any)
		result = s.create(input)
	case "updatePortfolio":
		if p := s.find(str(vars, "id")); p != nil {
			if name, ok := vars["name"].(string); ok {
				p.Name = name
			}
			if desc, ok := vars["description"].(string); ok {
				p.Description = &desc
			}
			result = *p
		}
	case "deletePortfolio":
		n := len(s.portfolios)
		s.portfolios = slices.DeleteFunc(s.portfolios, func(p portfolio.Portfolio) bool { return p.ID == str(vars, "id") })
		result = len(s.portfolios) < n
	case "addAssetToPortfolio":
		if p := s.find(str(vars, "portfolioId")); p != nil {
			result = s.addAsset(p, vars)
		}
	case "removeAssetFromPortfolio":
		removed := false
		if p := s.find(str(vars, "portfolioId")); p != nil {
			n := len(p.Assets)
			p.Assets = slices.DeleteFunc(p.Assets, func(a portfolio.Asset) bool { return a.ID == str(vars, "assetId") })
			removed = len(p.Assets) < n
		}
		result = removed
	case "cryptocurrencies":
		coins := s.coins
		if limit, ok := vars["limit"].(float64); ok && int(limit) < len(coins) {
			coins = coins[:int(limit)]
		}
		if coins == nil {
			coins = []portfolio.Cryptocurrency{}
		}
		result = coins
	case "cryptocurrency":
		for _, c := range s.coins {
			if c.ID == str(vars, "id") {
				result = c
			}
		}
	case "priceHistory":
		if points, ok := s.history[str(vars, "cryptoId")]; ok {
			if days, ok := vars["days"].(float64); ok && int(days) < len(points) {
				points = points[len(points)-int(days):]
			}
			result = points
		}
	default:
		http.Error(w, "unknown operation", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"data": map[string]any{operation(req.Query): result}})
}

func str(vars map[string]any, key string) string {
	v, _ := vars[key].(string)
	return v
}

func (s *Server) find(id string) *portfolio.Portfolio {
	for i := range s.portfolios {
		if s.portfolios[i].ID == id {
			return &s.portfolios[i]
		}
	}
	return nil
}

func (s *Server) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-new-%d", prefix, s.nextID)
}

func (s *Server) create(input map[string]any) portfolio.Portfolio {
	p := portfolio.Portfolio{
		ID:        s.id("p"),
		Name:      str(input, "name"),
		Assets:    []portfolio.Asset{},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if desc, ok := input["description"].(string); ok {
		p.Description = &desc
	}
	s.portfolios = append(s.portfolios, p)
	return p
}

func (s *Server) addAsset(p *portfolio.Portfolio, vars map[string]any) portfolio.Asset {
	amount, _ := vars["amount"].(float64)
	price, _ := vars["purchasePrice"].(float64)
	a := portfolio.Asset{
		ID:              s.id("a"),
		CryptoID:        str(vars, "cryptoId"),
		Symbol:          str(vars, "cryptoId"),
		Name:            str(vars, "cryptoId"),
		Amount:          amount,
		AverageBuyPrice: price,
		PurchasePrice:   price,
		CurrentPrice:    price,
		TotalValue:      amount * price,
	}
	for _, c := range s.coins {
		if c.ID == a.CryptoID {
			a.Symbol, a.Name = c.Symbol, c.Name
		}
	}
	p.Assets = append(p.Assets, a)
	return a
}

func (s *Server) addTransaction(vars map[string]any) portfolio.Transaction {
	amount, _ := vars["amount"].(float64)
	price, _ := vars["pricePerUnit"].(float64)
	tx := portfolio.Transaction{
		ID:              "tx-new",
		TransactionType: portfolio.TransactionType(str(vars, "transactionType")),
		Amount:          amount,
		PricePerUnit:    price,
		TotalValue:      amount * price,
		Timestamp:       time.Now().UTC(),
	}
	if notes, ok := vars["notes"].(string); ok {
		tx.Notes = &notes
	}
	p := s.find(str(vars, "portfolioId"))
	if p == nil {
		return tx
	}
	for j := range p.Assets {
		a := &p.Assets[j]
		if a.ID != str(vars, "assetId") {
			continue
		}
		a.Transactions = append(a.Transactions, tx)
		if tx.TransactionType == portfolio.Sell {
			a.Amount -= amount
		} else {
			a.Amount += amount
		}
	}
	return tx
}

// allTransactions flattens the transactions of every asset in a portfolio.
func allTransactions(p portfolio.Portfolio) []portfolio.Transaction {
	var out []portfolio.Transaction
	for _, a := range p.Assets {
		out = append(out, a.Transactions...)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
