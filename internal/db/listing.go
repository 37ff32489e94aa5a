package db

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/praxislegal/praxis/internal/domain"
)

// listSpec declares, per table, which columns a list query may touch. Filter
// and sort mappings double as whitelists: anything absent from them never
// reaches the SQL text, so user input only ever travels through bind
// parameters.
type listSpec struct {
	table         string
	selectColumns string
	// searchColumns are expressions matched case-insensitively against the
	// search term; localized jsonb columns list one expression per locale.
	searchColumns []string
	// filterColumns maps a filter name to a predicate template whose single
	// "?" is replaced by the bound parameter.
	filterColumns map[string]string
	// sortColumns maps exposed sort fields to their column expressions.
	sortColumns map[string]string
	defaultSort string
}

// escapeLikePattern neutralizes LIKE metacharacters in a search term so a
// literal "%" or "_" matches itself instead of acting as a wildcard.
func escapeLikePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

type listClauses struct {
	where   string
	orderBy string
	args    []any
}

func (spec listSpec) clauses(query domain.ListQuery) listClauses {
	var predicates []string
	var args []any

	placeholder := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Search != "" {
		var matches []string
		param := placeholder(escapeLikePattern(query.Search))
		for _, column := range spec.searchColumns {
			matches = append(matches, fmt.Sprintf("%s ILIKE '%%' || %s || '%%' ESCAPE '\\'", column, param))
		}
		if len(matches) > 0 {
			predicates = append(predicates, "("+strings.Join(matches, " OR ")+")")
		}
	}

	// Filters are applied in name order so the generated SQL is
	// deterministic for any given query.
	names := make([]string, 0, len(query.Filters))
	for name := range query.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := query.Filters[name]
		if value == "" || value == domain.FilterAll {
			continue
		}
		template, ok := spec.filterColumns[name]
		if !ok {
			continue
		}
		predicates = append(predicates, strings.Replace(template, "?", placeholder(value), 1))
	}

	where := ""
	if len(predicates) > 0 {
		where = " WHERE " + strings.Join(predicates, " AND ")
	}

	orderBy := " ORDER BY " + spec.defaultSort
	if query.SortField != "" {
		if column, ok := spec.sortColumns[query.SortField]; ok {
			direction := "ASC"
			if query.SortDirection == domain.SortDescending {
				direction = "DESC"
			}
			orderBy = fmt.Sprintf(" ORDER BY %s %s, id", column, direction)
		}
	}

	return listClauses{where: where, orderBy: orderBy, args: args}
}

// listPage runs the count + select pair for a list query inside one
// transaction, clamping an out-of-range page onto the last non-empty page so
// no navigation ever lands on an empty slice of a non-empty collection. The
// returned query carries the clamped page for the envelope echo.
func listPage[DTO any, T any](
	ctx context.Context,
	repo Repository,
	spec listSpec,
	query domain.ListQuery,
	convert func(DTO) (T, error),
) (page domain.Page[T], effective domain.ListQuery, err error) {
	effective = query
	if effective.PerPage <= 0 {
		effective.PerPage = domain.DefaultPerPage
	}
	if effective.Page <= 0 {
		effective.Page = 1
	}
	clauses := spec.clauses(effective)

	err = repo.WithinTransaction(ctx, func(tx pgx.Tx) error {
		countSQL := "SELECT count(*) FROM " + spec.table + clauses.where
		row := tx.QueryRow(ctx, countSQL, clauses.args...)
		if err := row.Scan(&page.Total); err != nil {
			return fmt.Errorf("failed to count %s: %w", spec.table, err)
		}

		if last := effective.LastPage(page.Total); effective.Page > last {
			effective.Page = last
		}

		limitParam := len(clauses.args) + 1
		offsetParam := len(clauses.args) + 2
		selectSQL := fmt.Sprintf(
			"SELECT %s FROM %s%s%s LIMIT $%d OFFSET $%d",
			spec.selectColumns, spec.table, clauses.where, clauses.orderBy, limitParam, offsetParam,
		)
		args := append(append([]any{}, clauses.args...), effective.PerPage, effective.Offset())

		rows, err := tx.Query(ctx, selectSQL, args...)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", spec.table, err)
		}
		defer rows.Close()

		dtos, err := pgx.CollectRows(rows, pgx.RowToStructByName[DTO])
		if err != nil {
			return fmt.Errorf("failed to map %s rows: %w", spec.table, err)
		}
		page.Items = make([]T, 0, len(dtos))
		for _, dto := range dtos {
			item, err := convert(dto)
			if err != nil {
				return fmt.Errorf("failed to convert %s row: %w", spec.table, err)
			}
			page.Items = append(page.Items, item)
		}
		return nil
	})
	return
}
