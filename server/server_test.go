package server_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billfold"
	"billfold/server"
)

// newTestServer builds a ledger with two wallets and serves it over
// httptest. The clock is pinned so summaries stay stable.
func newTestServer(t *testing.T) (*httptest.Server, *billfold.Manager) {
	t.Helper()
	t.Setenv("BILLFOLD_TESTING_NOW", "2025-03-10 12:00:00")

	m := billfold.NewManager()
	main, err := billfold.NewWallet("Main", "EUR", "everyday spending", decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, m.AddWallet(main))
	savings, err := billfold.NewWallet("Savings", "EUR", "", decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, m.AddWallet(savings))

	srv := httptest.NewServer(server.New(m, nil, zerolog.Nop()).Router())
	t.Cleanup(srv.Close)
	return srv, m
}

// makeRequest sends an HTTP request to the test server and returns the
// response together with its body.
func makeRequest(t *testing.T, srv *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

func decodeMap(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := makeRequest(t, srv, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

func TestWalletEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("List", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var wallets []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &wallets))
		require.Len(t, wallets, 2)
		assert.Equal(t, "Main", wallets[0]["name"])
		assert.Equal(t, true, wallets[0]["current"])
	})

	t.Run("ListSortedByBalance", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets?sort=balance", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var wallets []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &wallets))
		require.Len(t, wallets, 2)
		assert.Equal(t, "Savings", wallets[0]["name"])
	})

	t.Run("ListUnknownSort", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets?sort=color", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "unknown sort order")
	})

	t.Run("Create", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/wallets",
			strings.NewReader(`{"name": "Cash", "currency": "USD", "initialBalance": "75.50"}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		wallet := decodeMap(t, body)
		assert.Equal(t, "Cash", wallet["name"])
		assert.Equal(t, "USD", wallet["currency"])
		assert.Equal(t, 75.5, wallet["balance"])
	})

	t.Run("CreateDuplicate", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/wallets",
			strings.NewReader(`{"name": "main", "currency": "EUR"}`))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body, "already exists")
	})

	t.Run("CreateUnknownCurrency", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/wallets",
			strings.NewReader(`{"name": "Weird", "currency": "ZZZ"}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "unknown currency")
	})

	t.Run("CreateDeposit", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/wallets",
			strings.NewReader(`{"name": "Nest egg", "currency": "EUR", "initialBalance": "2000",
				"deposit": {"interestRate": 4.5, "termMonths": 12, "capitalization": true}}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		wallet := decodeMap(t, body)
		deposit := wallet["deposit"].(map[string]interface{})
		assert.Equal(t, 4.5, deposit["interestRate"])
		assert.Equal(t, float64(12), deposit["termMonths"])
	})

	t.Run("Get", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		wallet := decodeMap(t, body)
		assert.Equal(t, "Main", wallet["name"])
		assert.Equal(t, float64(1), wallet["transactionCount"])
	})

	t.Run("GetUnknown", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Piggy", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, "no wallet")
	})

	t.Run("Update", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "PUT", "/api/wallets/Cash",
			strings.NewReader(`{"description": "pocket money"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		wallet := decodeMap(t, body)
		assert.Equal(t, "pocket money", wallet["description"])
		assert.Equal(t, "Cash", wallet["name"])
	})

	t.Run("Delete", func(t *testing.T) {
		resp, _ := makeRequest(t, srv, "DELETE", "/api/wallets/Cash", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = makeRequest(t, srv, "GET", "/api/wallets/Cash", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestTransactionEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	var txID string

	t.Run("CreateExpense", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/wallets/Main/transactions",
			strings.NewReader(`{"direction": "expense", "amount": "42.10", "category": "Food", "description": "groceries"}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		tx := decodeMap(t, body)
		assert.Equal(t, "expense", tx["direction"])
		assert.Equal(t, "Food", tx["category"])
		txID = tx["id"].(string)
		require.NotEmpty(t, txID)
	})

	t.Run("CreateIncome", func(t *testing.T) {
		resp, _ := makeRequest(t, srv, "POST", "/api/wallets/Main/transactions",
			strings.NewReader(`{"direction": "income", "amount": "1500", "category": "Salary"}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		wallet := decodeMap(t, body)
		assert.Equal(t, 1957.9, wallet["balance"])
	})

	t.Run("CreateInvalidDirection", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/wallets/Main/transactions",
			strings.NewReader(`{"direction": "sideways", "amount": "10", "category": "Food"}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "sideways")
	})

	t.Run("CreateInvalidAmount", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/wallets/Main/transactions",
			strings.NewReader(`{"direction": "expense", "amount": "-5", "category": "Food"}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "amount")
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/wallets/Main/transactions",
			strings.NewReader(`{"direction": "expense", "amount": "1000000", "category": "Yacht"}`))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body, "insufficient balance")
	})

	t.Run("List", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main/transactions", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		listing := decodeMap(t, body)
		assert.Equal(t, "Main", listing["wallet"])
		assert.Equal(t, float64(3), listing["transactionCount"])
		assert.Equal(t, float64(3), listing["shown"])
	})

	t.Run("ListFilteredByType", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main/transactions?type=expense", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		listing := decodeMap(t, body)
		assert.Equal(t, float64(1), listing["shown"])
		txs := listing["transactions"].([]interface{})
		require.Len(t, txs, 1)
		assert.Equal(t, "Food", txs[0].(map[string]interface{})["category"])
	})

	t.Run("ListFilteredByCategory", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main/transactions?category=Salary,Food", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		listing := decodeMap(t, body)
		assert.Equal(t, float64(2), listing["shown"])
	})

	t.Run("ListFilteredByAmount", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main/transactions?min=100", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		listing := decodeMap(t, body)
		assert.Equal(t, float64(2), listing["shown"], "initial balance and salary")
	})

	t.Run("ListUnknownPreset", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main/transactions?period=someday", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "unknown date preset")
	})

	t.Run("Get", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main/transactions/"+txID, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		tx := decodeMap(t, body)
		assert.Equal(t, txID, tx["id"])
		assert.Equal(t, "groceries", tx["description"])
	})

	t.Run("GetUnknown", func(t *testing.T) {
		resp, _ := makeRequest(t, srv, "GET", "/api/wallets/Main/transactions/nope", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Update", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "PUT", "/api/wallets/Main/transactions/"+txID,
			strings.NewReader(`{"category": "Restaurants", "amount": "55"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		tx := decodeMap(t, body)
		assert.Equal(t, "Restaurants", tx["category"])
		assert.Equal(t, float64(55), tx["amount"])
	})

	t.Run("Delete", func(t *testing.T) {
		resp, _ := makeRequest(t, srv, "DELETE", "/api/wallets/Main/transactions/"+txID, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = makeRequest(t, srv, "GET", "/api/wallets/Main/transactions/"+txID, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestTransferEndpoint(t *testing.T) {
	srv, m := newTestServer(t)

	t.Run("Successful", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/transfers",
			strings.NewReader(`{"from": "Savings", "to": "Main", "amount": "250", "description": "top up"}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		tx := decodeMap(t, body)
		assert.Equal(t, "expense", tx["direction"])
		assert.Equal(t, "Transfer", tx["category"])
		transfer := tx["transfer"].(map[string]interface{})
		assert.Equal(t, "Main", transfer["peerWallet"])

		main, ok := m.Wallet("Main")
		require.True(t, ok)
		savings, ok := m.Wallet("Savings")
		require.True(t, ok)
		assert.True(t, main.Balance().Equal(decimal.NewFromInt(750)))
		assert.True(t, savings.Balance().Equal(decimal.NewFromInt(750)))
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/transfers",
			strings.NewReader(`{"from": "Main", "to": "Savings", "amount": "9999"}`))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body, "insufficient balance")
	})

	t.Run("SameWallet", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "POST", "/api/transfers",
			strings.NewReader(`{"from": "Main", "to": "main", "amount": "10"}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "itself")
	})

	t.Run("UnknownWallet", func(t *testing.T) {
		resp, _ := makeRequest(t, srv, "POST", "/api/transfers",
			strings.NewReader(`{"from": "Piggy", "to": "Main", "amount": "10"}`))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestReportEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := makeRequest(t, srv, "POST", "/api/wallets",
		strings.NewReader(`{"name": "Nest egg", "currency": "EUR", "initialBalance": "10000",
			"deposit": {"interestRate": 6, "termMonths": 12, "capitalization": false}}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("Summary", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main/summary", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		summary := decodeMap(t, body)
		assert.Equal(t, "Main", summary["wallet"])
	})

	t.Run("Deposit", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Nest egg/deposit?date=2025-09-10", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		deposit := decodeMap(t, body)
		assert.Equal(t, float64(6), deposit["monthsElapsed"])
		assert.Equal(t, false, deposit["matured"])
	})

	t.Run("DepositOnRegularWallet", func(t *testing.T) {
		resp, body := makeRequest(t, srv, "GET", "/api/wallets/Main/deposit", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "not a deposit")
	})

	t.Run("DepositBadDate", func(t *testing.T) {
		resp, _ := makeRequest(t, srv, "GET", "/api/wallets/Nest egg/deposit?date=whenever", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
