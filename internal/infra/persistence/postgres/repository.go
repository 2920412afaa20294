package postgres

import (
	"context"
	"fmt"

	"stencil/internal/domain/repository"
	"stencil/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// defaultOrderColumn is used when a list query does not name an order column.
const defaultOrderColumn = "created_at"

// Repository is the generic persistence core shared by the per-entity
// repositories. It covers the standard CRUD and pagination mechanics over a
// single GORM model; entity mapping and constraint translation stay in the
// per-entity wrappers.
type Repository[M model.Record] struct {
	db       *gorm.DB
	notFound error
	columns  map[string]struct{}
}

// NewRepository creates the generic core for model M. notFound is the
// sentinel returned when a single-row lookup matches nothing.
func NewRepository[M model.Record](db *gorm.DB, notFound error) *Repository[M] {
	var m M

	return &Repository[M]{
		db:       db,
		notFound: notFound,
		columns:  m.Columns(),
	}
}

// checkColumn validates a caller-supplied column name against the model's
// registered columns, so ordering and searching never interpolate raw input.
func (r *Repository[M]) checkColumn(column string) error {
	if _, ok := r.columns[column]; !ok {
		return errors.Wrapf(repository.ErrUnknownColumn, "column %q", column)
	}

	return nil
}

// Create inserts a single record and fills in its generated fields.
func (r *Repository[M]) Create(ctx context.Context, record *M) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.Wrap(err, "failed to create record")
	}

	return nil
}

// CreateBulk inserts all records in one transaction. The whole batch commits
// or the whole batch fails.
func (r *Repository[M]) CreateBulk(ctx context.Context, records []*M) error {
	if len(records) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(records).Error
	}); err != nil {
		return errors.Wrap(err, "failed to create records")
	}

	return nil
}

// FindByID retrieves a single record by primary key.
func (r *Repository[M]) FindByID(ctx context.Context, id uuid.UUID) (*M, error) {
	var record M
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}

		return nil, errors.Wrap(err, "failed to find record by id")
	}

	return &record, nil
}

// FindByIDs retrieves the subset of ids that exist; missing ids are dropped.
func (r *Repository[M]) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*M, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []*M
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find records by ids")
	}

	return records, nil
}

// FindByField retrieves the single record whose column equals value. It
// returns the not-found sentinel when nothing matches and ErrAmbiguousMatch
// when more than one row does.
func (r *Repository[M]) FindByField(ctx context.Context, column string, value any) (*M, error) {
	return r.FindByFields(ctx, []repository.FieldMatch{{Column: column, Value: value}})
}

// FindByFields retrieves the single record matching every given equality
// condition, with the same not-found and ambiguity semantics as FindByField.
func (r *Repository[M]) FindByFields(ctx context.Context, matches []repository.FieldMatch) (*M, error) {
	tx := r.db.WithContext(ctx).Model(new(M))
	for _, m := range matches {
		if err := r.checkColumn(m.Column); err != nil {
			return nil, err
		}

		tx = tx.Where(fmt.Sprintf("%s = ?", m.Column), m.Value)
	}

	var records []*M
	if err := tx.Limit(2).Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find record by fields")
	}

	switch len(records) {
	case 0:
		return nil, r.notFound
	case 1:
		return records[0], nil
	default:
		return nil, repository.ErrAmbiguousMatch
	}
}

// List returns one page of records plus pagination metadata. The total is
// counted over the filtered set when a search is applied.
func (r *Repository[M]) List(ctx context.Context, query repository.PageQuery) (*repository.Page[*M], error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		return nil, errors.New("page limit must be at least 1")
	}

	orderBy := query.OrderBy
	if orderBy == "" {
		orderBy = defaultOrderColumn
	}
	if err := r.checkColumn(orderBy); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Model(new(M))
	if query.SearchBy != "" && query.SearchQuery != "" {
		if err := r.checkColumn(query.SearchBy); err != nil {
			return nil, err
		}

		tx = tx.Where(fmt.Sprintf("%s::text ILIKE ?", query.SearchBy), "%"+query.SearchQuery+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count records")
	}

	direction := "ASC"
	if query.Desc {
		direction = "DESC"
	}

	var records []*M
	if err := tx.
		Order(fmt.Sprintf("%s %s", orderBy, direction)).
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}

	return &repository.Page[*M]{
		Page:         query.Page,
		Limit:        query.Limit,
		TotalPages:   repository.TotalPages(total, query.Limit),
		TotalRecords: total,
		Records:      records,
	}, nil
}

// UpdateByID applies the change-set to the row with the given id and returns
// the updated record. An empty change-set degenerates to a lookup.
func (r *Repository[M]) UpdateByID(ctx context.Context, id uuid.UUID, changes map[string]any) (*M, error) {
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, errors.Wrap(res.Error, "failed to update record")
		}
		if res.RowsAffected == 0 {
			return nil, r.notFound
		}
	}

	return r.FindByID(ctx, id)
}

// UpdateBulk applies each change-set to its row, paired strictly by id, in
// one transaction. Ids with no matching row are skipped; the returned slice
// holds only the records that were found and updated.
func (r *Repository[M]) UpdateBulk(ctx context.Context, changes []repository.BulkChange) ([]*M, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	updatedIDs := make([]uuid.UUID, 0, len(changes))
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			if len(change.Changes) == 0 {
				continue
			}

			res := tx.Model(new(M)).Where("id = ?", change.ID).Updates(change.Changes)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				updatedIDs = append(updatedIDs, change.ID)
			}
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to update records")
	}

	return r.FindByIDs(ctx, updatedIDs)
}

// DeleteByID removes the row with the given id, returning the not-found
// sentinel when it does not exist.
func (r *Repository[M]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete record")
	}
	if res.RowsAffected == 0 {
		return r.notFound
	}

	return nil
}

// DeleteBulk removes every row whose id exists; missing ids are ignored.
func (r *Repository[M]) DeleteBulk(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(new(M)).Error; err != nil {
		return errors.Wrap(err, "failed to delete records")
	}

	return nil
}
