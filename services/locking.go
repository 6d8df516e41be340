package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate transaction içinde satır kilidi (SELECT ... FOR UPDATE)
// uygular. SQLite satır kilidini desteklemez; orada veritabanı zaten tek
// yazarlı olduğundan kilitsiz devam edilir.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
