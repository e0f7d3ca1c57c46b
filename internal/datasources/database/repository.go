package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/techcurrent/article-feed/internal/datasources"
	"github.com/techcurrent/article-feed/internal/domain"
)

var _ datasources.DatasetRepository = (*Repository)(nil)
var _ datasources.APITokenRepository = (*Repository)(nil)

type Repository struct {
	db     *sql.DB
	flavor sqlbuilder.Flavor
}

func New(db *sql.DB, flavor sqlbuilder.Flavor) *Repository {
	return &Repository{db: db, flavor: flavor}
}

func (r *Repository) ListArticles(ctx context.Context) ([]domain.Article, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(
		"a.id", "a.title", "a.summary", "a.author", "a.created_at",
		"a.url", "a.thumbnail", "a.likes", "s.id", "s.name",
	)
	sb.From("articles a")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "sources s", "s.id = a.source_id")
	sb.OrderBy("a.id").Desc()

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running articles query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := []domain.Article{}
	for rows.Next() {
		var (
			a                                       domain.Article
			title, summary, author, link, thumbnail sql.NullString
			sourceID                                sql.NullInt64
			sourceName                              sql.NullString
		)
		if err := rows.Scan(
			&a.ID, &title, &summary, &author, &a.PublishedAt,
			&link, &thumbnail, &a.Likes, &sourceID, &sourceName,
		); err != nil {
			return nil, fmt.Errorf("scanning articles: %w", err)
		}

		a.Title = title.String
		a.Summary = summary.String
		a.Author = author.String
		a.URL = link.String
		a.ThumbnailURL = thumbnail.String
		a.Source = domain.Source{ID: sourceID.Int64, Name: sourceName.String}
		a.Tags = []domain.Tag{}
		articles = append(articles, a)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing rows iterator: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	if len(articles) == 0 {
		return articles, nil
	}

	articleTags, err := r.listArticleTags(ctx)
	if err != nil {
		return nil, err
	}

	return attachTags(articles, articleTags), nil
}

type articleTagRow struct {
	domain.ArticleTag
	Name string
}

func (r *Repository) listArticleTags(ctx context.Context) ([]articleTagRow, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("at.article_id", "t.id", "t.name")
	sb.From("article_tags at")
	sb.Join("tags t", "t.id = at.tag_id")
	sb.OrderBy("at.article_id", "t.id")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running article tags query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []articleTagRow
	for rows.Next() {
		var row articleTagRow
		if err := rows.Scan(&row.ArticleID, &row.TagID, &row.Name); err != nil {
			return nil, fmt.Errorf("scanning article tags: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing rows iterator: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}

// attachTags folds association rows into the articles they belong to.
// Rows for articles not present in the list are dropped.
func attachTags(articles []domain.Article, rows []articleTagRow) []domain.Article {
	index := make(map[int64]int, len(articles))
	for i, a := range articles {
		index[a.ID] = i
	}

	for _, row := range rows {
		i, ok := index[row.ArticleID]
		if !ok {
			continue
		}
		articles[i].Tags = append(articles[i].Tags, domain.Tag{ID: row.TagID, Name: row.Name})
	}

	return articles
}

func (r *Repository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("id", "name").From("tags").OrderBy("id")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running tags query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning tags: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return tags, nil
}

func (r *Repository) ListSources(ctx context.Context) ([]domain.Source, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("id", "name").From("sources").OrderBy("id")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running sources query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sources := []domain.Source{}
	for rows.Next() {
		var s domain.Source
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scanning sources: %w", err)
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return sources, nil
}

// ============================================
// API Token Store Implementation
// ============================================

var apiTokenColumns = []string{
	"id", "user_id", "token_hash", "prefix", "name",
	"created_at", "last_used_at", "expires_at", "revoked_at",
}

func (r *Repository) CreateAPIToken(ctx context.Context, token domain.APIToken) error {
	ib := r.flavor.NewInsertBuilder()
	ib.InsertInto("api_tokens")
	ib.Cols("id", "user_id", "token_hash", "prefix", "name", "created_at", "expires_at")
	ib.Values(
		token.ID, token.UserID, token.TokenHash, token.Prefix,
		nullString(token.Name), token.CreatedAt.UTC(), nullTime(token.ExpiresAt),
	)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting api token: %w", err)
	}
	return nil
}

func (r *Repository) GetAPITokenByHash(ctx context.Context, tokenHash string) (domain.APIToken, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(apiTokenColumns...).From("api_tokens")
	sb.Where(sb.Equal("token_hash", tokenHash))

	query, args := sb.Build()
	token, err := scanAPIToken(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.APIToken{}, datasources.ErrAPITokenNotFound
	}
	if err != nil {
		return domain.APIToken{}, fmt.Errorf("fetching api token by hash: %w", err)
	}
	return token, nil
}

func (r *Repository) UpdateAPITokenLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	ub := r.flavor.NewUpdateBuilder()
	ub.Update("api_tokens")
	ub.Set(ub.Assign("last_used_at", usedAt.UTC()))
	ub.Where(ub.Equal("id", tokenID))

	query, args := ub.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating api token last used time: %w", err)
	}
	return nil
}

func (r *Repository) ListUserAPITokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(apiTokenColumns...).From("api_tokens")
	sb.Where(sb.Equal("user_id", userID), sb.IsNull("revoked_at"))
	sb.OrderBy("created_at").Desc()

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running api tokens query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tokens := []domain.APIToken{}
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning api tokens: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return tokens, nil
}

func (r *Repository) CountUserActiveAPITokens(ctx context.Context, userID string, now time.Time) (int64, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)").From("api_tokens")
	sb.Where(
		sb.Equal("user_id", userID),
		sb.IsNull("revoked_at"),
		sb.Or(sb.IsNull("expires_at"), sb.GreaterThan("expires_at", now.UTC())),
	)

	query, args := sb.Build()
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting active api tokens: %w", err)
	}
	return count, nil
}

func (r *Repository) RevokeAPIToken(ctx context.Context, tokenID, userID string, revokedAt time.Time) error {
	ub := r.flavor.NewUpdateBuilder()
	ub.Update("api_tokens")
	ub.Set(ub.Assign("revoked_at", revokedAt.UTC()))
	ub.Where(ub.Equal("id", tokenID), ub.Equal("user_id", userID), ub.IsNull("revoked_at"))

	query, args := ub.Build()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("revoking api token: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking revoked api token count: %w", err)
	}
	if affected == 0 {
		return datasources.ErrAPITokenNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAPIToken(row rowScanner) (domain.APIToken, error) {
	var (
		token                          domain.APIToken
		name                           sql.NullString
		lastUsedAt, expiresAt, revoked sql.NullTime
	)
	if err := row.Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.Prefix, &name,
		&token.CreatedAt, &lastUsedAt, &expiresAt, &revoked,
	); err != nil {
		return domain.APIToken{}, err
	}

	if name.Valid {
		token.Name = &name.String
	}
	token.LastUsedAt = timePtr(lastUsedAt)
	token.ExpiresAt = timePtr(expiresAt)
	token.RevokedAt = timePtr(revoked)

	return token, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
