package models

// DocumentSequence is the single-row-per-scope counter behind document
// numbering. The row is locked and incremented inside the same transaction
// that inserts the numbered document.
type DocumentSequence struct {
	Prefix    string `gorm:"column:prefix;primaryKey"`
	Year      int    `gorm:"column:year;primaryKey"`
	NextValue int    `gorm:"column:next_value;not null;default:1"`
}
