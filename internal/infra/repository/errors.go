package repository

import (
	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// gorm/pgのエラーをrepositoryのエラーに寄せる
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Wrap(repo.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			// 参照先が無い
			return errors.Wrap(repo.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}
