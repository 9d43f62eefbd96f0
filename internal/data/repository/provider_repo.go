package repository

import (
	"context"
	"fmt"
	"strings"

	"karigar/internal/data/entity"
	"karigar/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProviderFilter narrows the discovery search. Empty fields are ignored.
type ProviderFilter struct {
	Category entity.ServiceCategory
	Location string
	Keywords string
	Limit    int
	Offset   int
}

type ProviderRepository interface {
	FindProfile(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error)
	UpdateProfile(ctx context.Context, profile *entity.ProviderProfile) error
	FindListing(ctx context.Context, userID uuid.UUID) (*entity.ProviderListing, error)
	Search(ctx context.Context, filter ProviderFilter) ([]*entity.ProviderListing, int64, error)
}

type providerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProviderRepository(db database.PgxIface, log *zap.Logger) ProviderRepository {
	return &providerRepository{
		db:  db,
		log: log.With(zap.String("repository", "provider")),
	}
}

const insertProfileQuery = `
	INSERT INTO provider_profiles (user_id, business_name, service_category, address, city, bio,
	                               accepted_terms, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func profileArgs(p *entity.ProviderProfile) []any {
	return []any{
		p.UserID,
		p.BusinessName,
		p.ServiceCategory,
		p.Address,
		p.City,
		p.Bio,
		p.AcceptedTerms,
		p.CreatedAt,
		p.UpdatedAt,
	}
}

func (r *providerRepository) FindProfile(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error) {
	listing, err := r.FindListing(ctx, userID)
	if err != nil || listing == nil {
		return nil, err
	}
	return &listing.Profile, nil
}

func (r *providerRepository) UpdateProfile(ctx context.Context, p *entity.ProviderProfile) error {
	query := `
		UPDATE provider_profiles
		SET business_name = $2, service_category = $3, address = $4, city = $5, bio = $6, updated_at = $7
		WHERE user_id = $1
	`

	result, err := r.db.Exec(ctx, query,
		p.UserID,
		p.BusinessName,
		p.ServiceCategory,
		p.Address,
		p.City,
		p.Bio,
		p.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update provider profile", zap.Error(err), zap.String("user_id", p.UserID.String()))
		return fmt.Errorf("update provider profile %s: %w", p.UserID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider profile %s not found", p.UserID)
	}

	return nil
}

var listingColumns = []string{
	"u.id", "u.name", "u.email", "u.password", "u.phone", "u.role", "u.city", "u.area",
	"u.is_active", "u.created_at", "u.updated_at",
	"p.user_id", "p.business_name", "p.service_category", "p.address", "p.city", "p.bio",
	"p.accepted_terms", "p.created_at", "p.updated_at",
	"COALESCE(AVG(r.rating) FILTER (WHERE r.status = 'VISIBLE'), 0) AS avg_rating",
	"COUNT(r.id) FILTER (WHERE r.status = 'VISIBLE') AS review_count",
}

func listingQuery() squirrel.SelectBuilder {
	return psql.Select(listingColumns...).
		From("users u").
		Join("provider_profiles p ON p.user_id = u.id").
		LeftJoin("reviews r ON r.provider_id = u.id").
		GroupBy("u.id", "p.user_id")
}

func scanListing(row scanner) (*entity.ProviderListing, error) {
	var l entity.ProviderListing
	err := row.Scan(
		&l.User.ID,
		&l.User.Name,
		&l.User.Email,
		&l.User.PasswordHash,
		&l.User.Phone,
		&l.User.Role,
		&l.User.City,
		&l.User.Area,
		&l.User.IsActive,
		&l.User.CreatedAt,
		&l.User.UpdatedAt,
		&l.Profile.UserID,
		&l.Profile.BusinessName,
		&l.Profile.ServiceCategory,
		&l.Profile.Address,
		&l.Profile.City,
		&l.Profile.Bio,
		&l.Profile.AcceptedTerms,
		&l.Profile.CreatedAt,
		&l.Profile.UpdatedAt,
		&l.AverageRating,
		&l.ReviewCount,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *providerRepository) FindListing(ctx context.Context, userID uuid.UUID) (*entity.ProviderListing, error) {
	query, args, err := listingQuery().Where(squirrel.Eq{"u.id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build provider listing query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find provider", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find provider %s: %w", userID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	listing, err := scanListing(rows)
	if err != nil {
		return nil, fmt.Errorf("scan provider %s: %w", userID, err)
	}
	return listing, nil
}

func (r *providerRepository) Search(ctx context.Context, filter ProviderFilter) ([]*entity.ProviderListing, int64, error) {
	where := squirrel.And{
		squirrel.Eq{"u.role": entity.RoleProvider},
		squirrel.Eq{"u.is_active": true},
	}
	if filter.Category != "" {
		where = append(where, squirrel.Eq{"p.service_category": filter.Category})
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		pattern := likePattern(loc)
		where = append(where, squirrel.Or{
			squirrel.ILike{"u.city": pattern},
			squirrel.ILike{"u.area": pattern},
			squirrel.ILike{"p.city": pattern},
			squirrel.ILike{"p.address": pattern},
		})
	}
	if kw := strings.TrimSpace(filter.Keywords); kw != "" {
		pattern := likePattern(kw)
		where = append(where, squirrel.Or{
			squirrel.ILike{"p.business_name": pattern},
			squirrel.ILike{"p.bio": pattern},
			squirrel.Expr(`EXISTS (SELECT 1 FROM services s
				WHERE s.provider_id = u.id AND s.status = 'ACTIVE' AND s.name ILIKE ?)`, pattern),
		})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").
		From("users u").
		Join("provider_profiles p ON p.user_id = u.id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count providers query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.Error("Failed to count providers", zap.Error(err))
		return nil, 0, fmt.Errorf("count providers: %w", err)
	}

	query, args, err := listingQuery().
		Where(where).
		OrderBy("avg_rating DESC", "p.business_name").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search providers query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search providers", zap.Error(err))
		return nil, 0, fmt.Errorf("search providers: %w", err)
	}
	defer rows.Close()

	var listings []*entity.ProviderListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			r.log.Error("Failed to scan provider row", zap.Error(err))
			return nil, 0, fmt.Errorf("scan provider row: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, total, rows.Err()
}

// likePattern wraps s for a substring ILIKE match, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
