package mysql

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/mkopp/mysite-backend/domain"
	"gorm.io/gorm"
)

const duplicateEntryErrNo = 1062

// translateError maps gorm and driver errors into the domain taxonomy.
// Duplicate-key detection matters here: the like tables rely on it to
// make concurrent toggles fail safe.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntryErrNo {
		return domain.ErrConflict
	}
	return err
}
