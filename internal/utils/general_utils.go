package utils

import (
	"time"

	"gorm.io/gorm"
)

func StrToTime(value string) (*time.Time, error) {
	layout := "2006-01-02 15:04:05"
	result, err := time.Parse(layout, value)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Paginate is a gorm scope applying page/size windows to list queries.
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if size < 1 {
			size = 10
		}
		offset := (page - 1) * size
		return db.Offset(offset).Limit(size)
	}
}
