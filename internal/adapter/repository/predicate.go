package repository

import (
	"errors"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"gorm.io/gorm"
)

// applyPredicates AND-joins the predicate list onto the query
func applyPredicates(q *gorm.DB, preds dto.Predicates) *gorm.DB {
	for _, p := range preds {
		q = q.Where(p.Expr, p.Args...)
	}
	return q
}

// storageErr maps a gorm error onto the domain error model. Record-not-found
// becomes notFound; everything else is a storage failure.
func storageErr(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return domainErrors.NewStorageError(op, err)
}
