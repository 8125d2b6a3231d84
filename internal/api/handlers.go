package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

// ─── Request Types ──────────────────────────────────────────────────────────

type createAssetRequest struct {
	Name         string          `json:"name"`
	ImageRef     string          `json:"image_ref"`
	TotalShares  uint64          `json:"total_shares"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

type statusRequest struct {
	Active bool `json:"active"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type buyRequest struct {
	Holder  string          `json:"holder"`
	Units   uint64          `json:"units"`
	Payment decimal.Decimal `json:"payment"`
}

type sellRequest struct {
	Holder string `json:"holder"`
	Units  uint64 `json:"units"`
}

type holderRequest struct {
	Holder string `json:"holder"`
}

type receiveRequest struct {
	From   string          `json:"from"`
	Amount decimal.Decimal `json:"amount"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func assetID(w http.ResponseWriter, r *http.Request) (domain.AssetID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid asset id: "+raw)
		return 0, false
	}
	return id, true
}

// ─── Administrative Handlers ────────────────────────────────────────────────

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := s.svc.CreateAsset(req.Name, req.ImageRef, req.TotalShares, req.PricePerUnit)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := s.svc.SetAssetActive(id, req.Active)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDepositRevenue(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := s.svc.DepositRevenue(id, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := s.svc.RecordExpense(id, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.WithdrawOperatorFunds(req.Amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"withdrawn": req.Amount,
	})
}

// ─── Holder Handlers ────────────────────────────────────────────────────────

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var req buyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.svc.BuyShares(id, req.Holder, req.Units, req.Payment)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var req sellRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.svc.SellShares(id, req.Holder, req.Units)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var req holderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	amount, err := s.svc.Claim(id, req.Holder)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"asset_id": id,
		"holder":   req.Holder,
		"claimed":  amount,
	})
}

func (s *Server) handleClaimAll(w http.ResponseWriter, r *http.Request) {
	var req holderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	total, err := s.svc.ClaimAll(req.Holder)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"holder":  req.Holder,
		"claimed": total,
	})
}

func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	var req receiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.Receive(req.From, req.Amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"received": req.Amount,
	})
}

// ─── Read-Only Handlers ─────────────────────────────────────────────────────

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.svc.ListAssets()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if assets == nil {
		assets = []domain.Asset{}
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) handleAssetCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.AssetCount()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	a, err := s.svc.GetAsset(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleSoldShares(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	sold, err := s.svc.SoldSharesOf(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"sold": sold})
}

func (s *Server) handleHoldingOf(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	h, err := s.svc.HoldingOf(id, chi.URLParam(r, "holder"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handlePendingOf(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	pending, err := s.svc.PendingOf(id, chi.URLParam(r, "holder"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pending": pending})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.PortfolioOf(chi.URLParam(r, "holder"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleContractBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance": s.svc.ContractBalance(),
	})
}

func (s *Server) handleAdminCheck(w http.ResponseWriter, r *http.Request) {
	isAdmin := s.adminKey != "" && r.Header.Get("X-Admin-Key") == s.adminKey
	writeJSON(w, http.StatusOK, map[string]bool{"is_administrator": isAdmin})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit: "+raw)
			return
		}
		limit = n
	}
	events, err := s.svc.Events(limit)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
