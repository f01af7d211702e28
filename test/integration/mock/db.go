package mock

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CategoryModel is a category row of the store double.
type CategoryModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"not null;uniqueIndex:idx_categories_name_type"`
	Type string `gorm:"not null;uniqueIndex:idx_categories_name_type"`
}

// TableName specifies the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// TransactionModel is a transaction row of the store double.
type TransactionModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Amount      decimal.Decimal `gorm:"type:text;not null"`
	Type        string          `gorm:"not null;index"`
	Category    string          `gorm:"not null;index"`
	Description string
	Date        time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}

// Db is an in-memory sqlite database backing the store double.
type Db struct {
	DbConn *gorm.DB
	models []any
}

// NewDb opens a private in-memory database and migrates the store tables.
func NewDb() (*Db, error) {
	dbSQL, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		return nil, err
	}

	// a second connection would see a different in-memory database
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	d := &Db{
		DbConn: dbConn,
		models: []any{&CategoryModel{}, &TransactionModel{}},
	}
	if err := dbConn.AutoMigrate(d.models...); err != nil {
		return nil, fmt.Errorf("failed to migrate store tables: %w", err)
	}

	return d, nil
}

// ClearDB deletes every row and resets the id sequences.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		if err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}

		stmt := &gorm.Statement{DB: d.DbConn}
		if err := stmt.Parse(model); err != nil {
			return err
		}
		// sqlite_sequence only exists once an AUTOINCREMENT table got a row
		_ = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", stmt.Schema.Table).Error
	}
	return nil
}

// Count returns the number of rows in table.
func (d *Db) Count(table string) (int64, error) {
	var count int64
	err := d.DbConn.Table(table).Count(&count).Error
	return count, err
}

// Close closes the underlying connection.
func (d *Db) Close() error {
	sqlDB, err := d.DbConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
