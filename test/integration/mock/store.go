package mock

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Store is an HTTP double of the Transaction Store backed by sqlite.
// It answers the way the real store does: plain text errors, null for empty
// lists and bare JSON numbers for amounts.
type Store struct {
	db       *Db
	server   *httptest.Server
	down     atomic.Bool
	requests atomic.Int64
	now      func() time.Time
}

type transactionJSON struct {
	ID          int64       `json:"id"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	CreatedAt   time.Time   `json:"created_at"`
}

type categoryJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type monthlyJSON struct {
	Month         string      `json:"month"`
	TotalIncome   json.Number `json:"total_income"`
	TotalExpenses json.Number `json:"total_expenses"`
	NetAmount     json.Number `json:"net_amount"`
}

// NewStore starts the double on a random local port.
func NewStore(db *Db, now func() time.Time) *Store {
	s := &Store{db: db, now: now}

	engine := gin.New()
	engine.Use(s.availability())
	engine.GET("/categories", s.listCategories)
	engine.POST("/categories", s.createCategory)
	engine.GET("/transactions", s.listTransactions)
	engine.POST("/transactions", s.createTransaction)
	engine.GET("/transactions/monthly", s.monthlyReport)
	engine.GET("/transactions/:id", s.getTransaction)
	engine.PUT("/transactions/:id", s.updateTransaction)
	engine.DELETE("/transactions/:id", s.deleteTransaction)

	s.server = httptest.NewServer(engine)
	return s
}

// URL returns the base URL of the double.
func (s *Store) URL() string {
	return s.server.URL
}

// SetDown makes every request fail with 503 while down is true.
func (s *Store) SetDown(down bool) {
	s.down.Store(down)
}

// Requests returns the number of requests served since the last reset.
func (s *Store) Requests() int64 {
	return s.requests.Load()
}

// Reset clears the failure flag and the request counter.
func (s *Store) Reset() {
	s.down.Store(false)
	s.requests.Store(0)
}

// Close shuts the server down.
func (s *Store) Close() {
	s.server.Close()
}

// SeedCategory inserts a category directly.
func (s *Store) SeedCategory(name, txnType string) error {
	return s.db.DbConn.Create(&CategoryModel{Name: name, Type: txnType}).Error
}

// SeedTransaction inserts a transaction directly.
func (s *Store) SeedTransaction(amount decimal.Decimal, txnType, category, description string, date time.Time) error {
	return s.db.DbConn.Create(&TransactionModel{
		Amount:      amount,
		Type:        txnType,
		Category:    category,
		Description: description,
		Date:        date,
		CreatedAt:   s.now(),
	}).Error
}

func (s *Store) availability() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.requests.Add(1)
		if s.down.Load() {
			c.String(http.StatusServiceUnavailable, "store unavailable\n")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Store) listCategories(c *gin.Context) {
	var models []CategoryModel
	if err := s.db.DbConn.Order("type, name").Find(&models).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	var out []categoryJSON
	for _, m := range models {
		out = append(out, categoryJSON{ID: m.ID, Name: m.Name, Type: m.Type})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Store) createCategory(c *gin.Context) {
	var req categoryJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if !validType(req.Type) {
		c.String(http.StatusBadRequest, "Invalid category type. Must be 'income' or 'expense'")
		return
	}

	var existing int64
	s.db.DbConn.Model(&CategoryModel{}).Where("name = ? AND type = ?", req.Name, req.Type).Count(&existing)
	if existing > 0 {
		c.String(http.StatusConflict, "Category already exists")
		return
	}

	model := CategoryModel{Name: req.Name, Type: req.Type}
	if err := s.db.DbConn.Create(&model).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, categoryJSON{ID: model.ID, Name: model.Name, Type: model.Type})
}

func (s *Store) listTransactions(c *gin.Context) {
	query := s.db.DbConn.Order("date DESC")
	if v := c.Query("type"); v != "" {
		query = query.Where("type = ?", v)
	}
	if v := c.Query("category"); v != "" {
		query = query.Where("category = ?", v)
	}
	if v := c.Query("start_date"); v != "" {
		start, err := time.Parse(dateLayout, v)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("date >= ?", start)
	}
	if v := c.Query("end_date"); v != "" {
		end, err := time.Parse(dateLayout, v)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("date <= ?", end)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	var out []transactionJSON
	for _, m := range models {
		out = append(out, toTransactionJSON(m))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Store) getTransaction(c *gin.Context) {
	model, ok := s.findTransaction(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toTransactionJSON(*model))
}

func (s *Store) createTransaction(c *gin.Context) {
	req, ok := s.bindTransaction(c)
	if !ok {
		return
	}

	req.CreatedAt = s.now()
	if err := s.db.DbConn.Create(req).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, toTransactionJSON(*req))
}

func (s *Store) updateTransaction(c *gin.Context) {
	model, ok := s.findTransaction(c)
	if !ok {
		return
	}
	req, ok := s.bindTransaction(c)
	if !ok {
		return
	}

	model.Amount = req.Amount
	model.Type = req.Type
	model.Category = req.Category
	model.Description = req.Description
	model.Date = req.Date
	if err := s.db.DbConn.Save(model).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, toTransactionJSON(*model))
}

func (s *Store) deleteTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	result := s.db.DbConn.Delete(&TransactionModel{}, id)
	if result.Error != nil {
		c.String(http.StatusInternalServerError, result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		c.String(http.StatusNotFound, "Transaction not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Store) monthlyReport(c *gin.Context) {
	var models []TransactionModel
	if err := s.db.DbConn.Find(&models).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	type totals struct{ income, expenses decimal.Decimal }
	byMonth := make(map[string]*totals)
	for _, m := range models {
		key := m.Date.Format("2006-01")
		t, ok := byMonth[key]
		if !ok {
			t = &totals{}
			byMonth[key] = t
		}
		if m.Type == "income" {
			t.income = t.income.Add(m.Amount)
		} else {
			t.expenses = t.expenses.Add(m.Amount)
		}
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	var out []monthlyJSON
	for _, month := range months {
		t := byMonth[month]
		out = append(out, monthlyJSON{
			Month:         month,
			TotalIncome:   number(t.income),
			TotalExpenses: number(t.expenses),
			NetAmount:     number(t.income.Sub(t.expenses)),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Store) findTransaction(c *gin.Context) (*TransactionModel, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid transaction ID")
		return nil, false
	}

	var model TransactionModel
	if err := s.db.DbConn.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Transaction not found")
		} else {
			c.String(http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return &model, true
}

func (s *Store) bindTransaction(c *gin.Context) (*TransactionModel, bool) {
	var req transactionJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return nil, false
	}
	if !validType(req.Type) {
		c.String(http.StatusBadRequest, "Invalid transaction type. Must be 'income' or 'expense'")
		return nil, false
	}
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil || !amount.IsPositive() {
		c.String(http.StatusBadRequest, "Amount must be greater than 0")
		return nil, false
	}

	var exists int64
	s.db.DbConn.Model(&CategoryModel{}).Where("name = ? AND type = ?", req.Category, req.Type).Count(&exists)
	if exists == 0 {
		c.String(http.StatusBadRequest, "Invalid category for the transaction type")
		return nil, false
	}

	return &TransactionModel{
		Amount:      amount,
		Type:        req.Type,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		Date:        req.Date.UTC(),
	}, true
}

func toTransactionJSON(m TransactionModel) transactionJSON {
	return transactionJSON{
		ID:          m.ID,
		Amount:      number(m.Amount),
		Type:        m.Type,
		Category:    m.Category,
		Description: m.Description,
		Date:        m.Date.UTC(),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func validType(t string) bool {
	return t == "income" || t == "expense"
}
